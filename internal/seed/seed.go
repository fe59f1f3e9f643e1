// Package seed populates an empty database with demo users, knowledge
// points, questions, and a month of synthetic learning history.
package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/question-bank/backend/internal/models"
	"github.com/question-bank/backend/internal/stats"
	"golang.org/x/crypto/bcrypt"
)

// Run seeds the database. It is a no-op when any users already exist.
func Run(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding demo data")

	kpIDs, err := seedKnowledgePoints(db)
	if err != nil {
		return err
	}
	userIDs, userPrefs, err := seedUsers(db)
	if err != nil {
		return err
	}
	questions, err := seedQuestions(db, kpIDs)
	if err != nil {
		return err
	}
	if err := seedHistory(db, userIDs, userPrefs, questions); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d knowledge points, %d questions",
		len(userIDs), len(kpIDs), len(questions))
	return nil
}

type kpSeed struct {
	name, category, description string
	level                       int
}

func seedKnowledgePoints(db *sql.DB) ([]int64, error) {
	points := []kpSeed{
		{"Arrays and Strings", "data structures", "Array and string fundamentals", 1},
		{"Linked Lists", "data structures", "Singly and doubly linked list operations", 2},
		{"Stacks and Queues", "data structures", "Stack and queue implementations and uses", 2},
		{"Binary Trees", "data structures", "Tree traversal and search", 3},
		{"Hash Tables", "data structures", "Hashing principles and applications", 2},
		{"Sorting Algorithms", "algorithms", "Comparison and linear-time sorts", 3},
		{"Search Algorithms", "algorithms", "Linear and binary search", 2},
		{"Dynamic Programming", "algorithms", "Optimal substructure and memoization", 4},
		{"Greedy Algorithms", "algorithms", "Greedy strategy and exchange arguments", 3},
		{"Graph Algorithms", "algorithms", "Traversal and shortest paths", 4},
		{"Python Basics", "languages", "Python syntax fundamentals", 1},
		{"Java Basics", "languages", "Java syntax fundamentals", 1},
		{"C++ Basics", "languages", "C++ syntax fundamentals", 2},
		{"Object-Oriented Design", "paradigms", "OOP principles in practice", 2},
		{"Functional Programming", "paradigms", "Functional style and immutability", 3},
	}

	ids := make([]int64, 0, len(points))
	for _, p := range points {
		var id int64
		err := db.QueryRow(
			`INSERT INTO knowledge_points (name, category, description, difficulty_level)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			p.name, p.category, p.description, p.level,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("seed knowledge point %q: %w", p.name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type userSeed struct {
	username, email string
	difficulty      models.Difficulty
	questionTypes   []models.QuestionType
	interaction     models.InteractionType
}

func seedUsers(db *sql.DB) ([]int64, map[int64]models.Difficulty, error) {
	users := []userSeed{
		{"alice_student", "alice@example.com", models.DifficultyEasy,
			[]models.QuestionType{models.TypeTheory, models.TypeMultipleChoice}, models.InteractionTheory},
		{"bob_coder", "bob@example.com", models.DifficultyMedium,
			[]models.QuestionType{models.TypeCoding, models.TypePractical}, models.InteractionPractice},
		{"charlie_advanced", "charlie@example.com", models.DifficultyHard,
			[]models.QuestionType{models.TypeCoding, models.TypeTheory}, models.InteractionMixed},
		{"diana_beginner", "diana@example.com", models.DifficultyEasy,
			[]models.QuestionType{models.TypeMultipleChoice, models.TypeTheory}, models.InteractionTheory},
		{"evan_enthusiast", "evan@example.com", models.DifficultyMedium,
			[]models.QuestionType{models.TypeCoding, models.TypePractical, models.TypeTheory}, models.InteractionPractice},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash seed password: %w", err)
	}

	ids := make([]int64, 0, len(users))
	prefs := make(map[int64]models.Difficulty, len(users))
	for _, u := range users {
		types, err := json.Marshal(u.questionTypes)
		if err != nil {
			return nil, nil, fmt.Errorf("encode preferences: %w", err)
		}
		var id int64
		err = db.QueryRow(
			`INSERT INTO users (username, email, password_hash, preferred_difficulty,
			                    preferred_question_types, preferred_interaction_type)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			u.username, u.email, string(hashed), u.difficulty, types, u.interaction,
		).Scan(&id)
		if err != nil {
			return nil, nil, fmt.Errorf("seed user %q: %w", u.username, err)
		}
		ids = append(ids, id)
		prefs[id] = u.difficulty
	}
	return ids, prefs, nil
}

func seedQuestions(db *sql.DB, kpIDs []int64) ([]models.Question, error) {
	kp := func(i int) int64 { return kpIDs[i-1] }

	questions := []models.Question{
		{Title: "What is an array?", Content: "Explain what an array is, its key properties, and how it is laid out in memory.",
			QuestionType: models.TypeTheory, Difficulty: models.DifficultyEasy, EstimatedTime: 10, KnowledgePointID: kp(1),
			CorrectAnswer: "A linear data structure of same-typed elements stored contiguously with O(1) random access.",
			Explanation:   "Contiguous layout is what makes indexed access constant time."},
		{Title: "Bubble sort complexity", Content: "Analyze the time complexity of bubble sort in the best, worst, and average cases.",
			QuestionType: models.TypeTheory, Difficulty: models.DifficultyMedium, EstimatedTime: 15, KnowledgePointID: kp(6),
			CorrectAnswer: "Best O(n), worst O(n^2), average O(n^2).",
			Explanation:   "The nested comparison loops give the quadratic bound; an early-exit pass gives the linear best case."},
		{Title: "Dynamic programming principles", Content: "What is dynamic programming, and which two properties must a problem have for it to apply?",
			QuestionType: models.TypeTheory, Difficulty: models.DifficultyHard, EstimatedTime: 20, KnowledgePointID: kp(8),
			CorrectAnswer: "Solving via overlapping subproblems with optimal substructure, caching subproblem results.",
			Explanation:   "Without overlapping subproblems memoization buys nothing; without optimal substructure combining solutions is unsound."},
		{Title: "Python list operations", Content: "Which of these Python list operations runs in O(1) time?",
			QuestionType: models.TypeMultipleChoice, Difficulty: models.DifficultyEasy, EstimatedTime: 5, KnowledgePointID: kp(11),
			Options:       []string{"A. append()", "B. insert(0, x)", "C. remove(x)", "D. index(x)"},
			CorrectAnswer: "A",
			Explanation:   "append() writes at the end of the backing array, amortized O(1)."},
		{Title: "Complete binary tree height", Content: "What is the height of a complete binary tree with n nodes?",
			QuestionType: models.TypeMultipleChoice, Difficulty: models.DifficultyMedium, EstimatedTime: 8, KnowledgePointID: kp(4),
			Options:       []string{"A. log2(n)", "B. floor(log2(n))", "C. ceil(log2(n+1))", "D. n-1"},
			CorrectAnswer: "C",
			Explanation:   "A complete tree of height h holds between 2^(h-1) and 2^h - 1 nodes."},
		{Title: "Two Sum", Content: "Given an integer array nums and a target, return the indices of the two numbers that add up to the target.",
			QuestionType: models.TypeCoding, Difficulty: models.DifficultyEasy, EstimatedTime: 20, KnowledgePointID: kp(1),
			ProgrammingLanguage: "python",
			StarterCode:         "def twoSum(nums, target):\n    # your code here\n    pass",
			CorrectAnswer:       "Hash map of seen values to indices, single pass, O(n).",
			Explanation:         "Looking up the complement in a hash map makes each step O(1).",
			TestCases: []models.TestCase{
				{Input: "[2,7,11,15]\n9", ExpectedOutput: "[0,1]"},
				{Input: "[3,2,4]\n6", ExpectedOutput: "[1,2]"},
			},
			ExternalPlatform: "leetcode", ExternalID: "1"},
		{Title: "Reverse a linked list", Content: "Given the head of a singly linked list, reverse the list and return the new head.",
			QuestionType: models.TypeCoding, Difficulty: models.DifficultyMedium, EstimatedTime: 25, KnowledgePointID: kp(2),
			ProgrammingLanguage: "python",
			StarterCode:         "class ListNode:\n    def __init__(self, val=0, next=None):\n        self.val = val\n        self.next = next\n\ndef reverseList(head):\n    # your code here\n    pass",
			CorrectAnswer:       "Iteratively repoint each node at its predecessor.",
			Explanation:         "Keep a prev pointer while walking the list; each node's next flips to prev.",
			TestCases: []models.TestCase{
				{Input: "[1,2,3,4,5]", ExpectedOutput: "[5,4,3,2,1]"},
			}},
		{Title: "Maximum subarray sum", Content: "Find the contiguous subarray (at least one element) with the largest sum and return that sum.",
			QuestionType: models.TypeCoding, Difficulty: models.DifficultyMedium, EstimatedTime: 30, KnowledgePointID: kp(8),
			ProgrammingLanguage: "python",
			StarterCode:         "def maxSubArray(nums):\n    # use dynamic programming\n    pass",
			CorrectAnswer:       "Kadane's algorithm.",
			Explanation:         "Track the best sum ending at each index; reset when it drops below the element itself.",
			TestCases: []models.TestCase{
				{Input: "[-2,1,-3,4,-1,2,1,-5,4]", ExpectedOutput: "6"},
			}},
		{Title: "Valid parentheses", Content: "Given a string of brackets, determine whether every opener is closed in the right order.",
			QuestionType: models.TypeCoding, Difficulty: models.DifficultyEasy, EstimatedTime: 15, KnowledgePointID: kp(3),
			ProgrammingLanguage: "python",
			StarterCode:         "def isValid(s):\n    # use a stack\n    pass",
			CorrectAnswer:       "Push openers, pop and match on closers.",
			Explanation:         "The stack's LIFO order mirrors bracket nesting exactly.",
			TestCases: []models.TestCase{
				{Input: "()", ExpectedOutput: "true"},
				{Input: "(]", ExpectedOutput: "false"},
			}},
		{Title: "Design a min stack", Content: "Design a stack supporting push, pop, and top, plus retrieving the minimum element in constant time.",
			QuestionType: models.TypePractical, Difficulty: models.DifficultyMedium, EstimatedTime: 35, KnowledgePointID: kp(3),
			CorrectAnswer: "Maintain an auxiliary stack of running minimums.",
			Explanation:   "The auxiliary stack's top always mirrors the minimum of the main stack."},
		{Title: "Implement an LRU cache", Content: "Design a least-recently-used cache with O(1) get and put.",
			QuestionType: models.TypePractical, Difficulty: models.DifficultyHard, EstimatedTime: 45, KnowledgePointID: kp(5),
			CorrectAnswer: "Hash map into a doubly linked list ordered by recency.",
			Explanation:   "The map gives O(1) lookup; the list gives O(1) reordering and eviction."},
	}

	for i := range questions {
		q := &questions[i]
		options, err := json.Marshal(q.Options)
		if err != nil {
			return nil, fmt.Errorf("encode options: %w", err)
		}
		testCases, err := json.Marshal(q.TestCases)
		if err != nil {
			return nil, fmt.Errorf("encode test cases: %w", err)
		}
		err = db.QueryRow(
			`INSERT INTO questions
			 (title, content, question_type, difficulty, estimated_time, knowledge_point_id,
			  options, correct_answer, explanation, programming_language, starter_code,
			  test_cases, external_platform, external_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			 RETURNING id`,
			q.Title, q.Content, q.QuestionType, q.Difficulty, q.EstimatedTime, q.KnowledgePointID,
			options, q.CorrectAnswer, q.Explanation, q.ProgrammingLanguage, q.StarterCode,
			testCases, q.ExternalPlatform, q.ExternalID,
		).Scan(&q.ID)
		if err != nil {
			return nil, fmt.Errorf("seed question %q: %w", q.Title, err)
		}
	}
	return questions, nil
}

func seedHistory(db *sql.DB, userIDs []int64, prefs map[int64]models.Difficulty, questions []models.Question) error {
	type tally struct {
		total, correct, timeSpent int
		last                      time.Time
	}

	rng := rand.New(rand.NewSource(42))

	for _, userID := range userIDs {
		perKP := make(map[int64]*tally)
		numRecords := 20 + rng.Intn(31)

		for i := 0; i < numRecords; i++ {
			q := questions[rng.Intn(len(questions))]

			// Accuracy skews with how well the question's difficulty
			// matches the user's preference.
			accuracy := 0.7
			switch prefs[userID] {
			case models.DifficultyEasy:
				accuracy = 0.8
			case models.DifficultyHard:
				accuracy = 0.6
			}
			switch q.Difficulty {
			case models.DifficultyEasy:
				accuracy += 0.2
				if accuracy > 0.95 {
					accuracy = 0.95
				}
			case models.DifficultyHard:
				accuracy -= 0.2
				if accuracy < 0.3 {
					accuracy = 0.3
				}
			}
			correct := rng.Float64() < accuracy

			baseSeconds := q.EstimatedTime * 60
			timeSpent := baseSeconds/2 + rng.Intn(baseSeconds+1)

			completedAt := time.Now().AddDate(0, 0, -(1 + rng.Intn(30)))
			startedAt := completedAt.Add(-time.Duration(timeSpent) * time.Second)

			answer := q.CorrectAnswer
			if !correct {
				answer = "incorrect attempt"
			}

			_, err := db.Exec(
				`INSERT INTO learning_records
				 (user_id, question_id, is_correct, time_spent, attempt_count,
				  user_answer, interaction_type, started_at, completed_at)
				 VALUES ($1, $2, $3, $4, 1, $5, $6, $7, $8)`,
				userID, q.ID, correct, timeSpent, answer, models.InteractionMixed,
				startedAt, completedAt,
			)
			if err != nil {
				return fmt.Errorf("seed learning record: %w", err)
			}

			t, ok := perKP[q.KnowledgePointID]
			if !ok {
				t = &tally{}
				perKP[q.KnowledgePointID] = t
			}
			t.total++
			if correct {
				t.correct++
			}
			t.timeSpent += timeSpent
			if completedAt.After(t.last) {
				t.last = completedAt
			}
		}

		for kpID, t := range perKP {
			_, err := db.Exec(
				`INSERT INTO user_knowledge_stats
				 (user_id, knowledge_point_id, total_attempts, correct_attempts,
				  accuracy_rate, total_time_spent, average_time, mastery_level, last_practice_time)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				userID, kpID, t.total, t.correct,
				stats.Accuracy(t.correct, t.total), t.timeSpent,
				stats.AverageTime(t.timeSpent, t.total),
				stats.Mastery(t.correct, t.total), t.last,
			)
			if err != nil {
				return fmt.Errorf("seed knowledge stats: %w", err)
			}
		}
	}
	return nil
}
