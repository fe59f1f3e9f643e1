package judge

import (
	"strings"

	"github.com/question-bank/backend/internal/models"
)

// ExternalProblem is a coding problem imported from an external platform,
// served read-only alongside the local question bank.
type ExternalProblem struct {
	Slug        string            `json:"slug"`
	ExternalID  int               `json:"external_id"`
	Title       string            `json:"title"`
	Difficulty  string            `json:"difficulty"`
	Description string            `json:"description"`
	StarterCode map[string]string `json:"starter_code,omitempty"`
	TestCases   []models.TestCase `json:"test_cases,omitempty"`
}

// ExternalProblemSummary is the list view of a catalog problem.
type ExternalProblemSummary struct {
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

// Catalog is an in-memory set of imported problems. The seed set is small;
// a real import pipeline would populate it from the platform API.
type Catalog struct {
	problems map[string]ExternalProblem
	order    []string
}

func NewCatalog() *Catalog {
	c := &Catalog{problems: make(map[string]ExternalProblem)}
	for _, p := range builtinProblems {
		c.problems[p.Slug] = p
		c.order = append(c.order, p.Slug)
	}
	return c
}

// Get returns the problem for a slug, or false when unknown.
func (c *Catalog) Get(slug string) (ExternalProblem, bool) {
	p, ok := c.problems[slug]
	return p, ok
}

// List returns problem summaries, optionally filtered by difficulty
// (case-insensitive). An empty difficulty matches everything.
func (c *Catalog) List(difficulty string) []ExternalProblemSummary {
	summaries := make([]ExternalProblemSummary, 0, len(c.order))
	for _, slug := range c.order {
		p := c.problems[slug]
		if difficulty != "" && !strings.EqualFold(p.Difficulty, difficulty) {
			continue
		}
		summaries = append(summaries, ExternalProblemSummary{
			Slug:       p.Slug,
			Title:      p.Title,
			Difficulty: p.Difficulty,
		})
	}
	return summaries
}

var builtinProblems = []ExternalProblem{
	{
		Slug:        "two-sum",
		ExternalID:  1,
		Title:       "Two Sum",
		Difficulty:  "Easy",
		Description: "Given an array of integers nums and an integer target, return the indices of the two numbers that add up to target.",
		StarterCode: map[string]string{
			"python": "def twoSum(nums, target):\n    # your code here\n    pass",
			"java":   "class Solution {\n    public int[] twoSum(int[] nums, int target) {\n        // your code here\n    }\n}",
			"cpp":    "class Solution {\npublic:\n    vector<int> twoSum(vector<int>& nums, int target) {\n        // your code here\n    }\n};",
		},
		TestCases: []models.TestCase{
			{Input: "[2,7,11,15]\n9", ExpectedOutput: "[0,1]"},
			{Input: "[3,2,4]\n6", ExpectedOutput: "[1,2]"},
			{Input: "[3,3]\n6", ExpectedOutput: "[0,1]"},
		},
	},
	{
		Slug:        "palindrome-number",
		ExternalID:  9,
		Title:       "Palindrome Number",
		Difficulty:  "Easy",
		Description: "Given an integer x, return true if x is a palindrome and false otherwise.",
		StarterCode: map[string]string{
			"python": "def isPalindrome(x):\n    # your code here\n    pass",
		},
		TestCases: []models.TestCase{
			{Input: "121", ExpectedOutput: "true"},
			{Input: "-121", ExpectedOutput: "false"},
			{Input: "10", ExpectedOutput: "false"},
		},
	},
}
