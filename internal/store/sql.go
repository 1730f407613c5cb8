package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/eduquiz/backend/internal/domain/lesson"
	"github.com/eduquiz/backend/internal/domain/quiz"
)

// SQLStore keeps lessons, questions and options in three tables. Row order
// is kept in a position column.
type SQLStore struct {
	db     *sql.DB
	driver Driver
}

func NewSQLStore(db *sql.DB, driver Driver) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Load
// ============================================================================

func (s *SQLStore) LoadLessons(ctx context.Context) ([]*lesson.Lesson, error) {
	lessons, byID, err := s.loadLessonRows(ctx)
	if err != nil {
		return nil, err
	}
	questionIdx, err := s.loadQuestionRows(ctx, byID)
	if err != nil {
		return nil, err
	}
	if err := s.loadOptionRows(ctx, byID, questionIdx); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (s *SQLStore) loadLessonRows(ctx context.Context) ([]*lesson.Lesson, map[string]*lesson.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, content, quiz_title FROM lessons ORDER BY position")
	if err != nil {
		return nil, nil, errors.Wrap(err, "query lessons")
	}
	defer rows.Close()

	lessons := []*lesson.Lesson{}
	byID := make(map[string]*lesson.Lesson)
	for rows.Next() {
		var l lesson.Lesson
		var quizTitle sql.NullString
		if err := rows.Scan(&l.ID, &l.Title, &l.Content, &quizTitle); err != nil {
			return nil, nil, errors.Wrap(err, "scan lesson")
		}
		if quizTitle.Valid {
			l.Quiz = &quiz.Quiz{Title: quizTitle.String, Questions: []quiz.Question{}}
		}
		lessons = append(lessons, &l)
		byID[l.ID] = &l
	}
	return lessons, byID, errors.Wrap(rows.Err(), "iterate lessons")
}

type questionKey struct {
	lessonID   string
	questionID string
}

func (s *SQLStore) loadQuestionRows(ctx context.Context, byID map[string]*lesson.Lesson) (map[questionKey]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT lesson_id, id, type, text FROM questions ORDER BY lesson_id, position")
	if err != nil {
		return nil, errors.Wrap(err, "query questions")
	}
	defer rows.Close()

	idx := make(map[questionKey]int)
	for rows.Next() {
		var lessonID string
		var q quiz.Question
		if err := rows.Scan(&lessonID, &q.ID, &q.Type, &q.Text); err != nil {
			return nil, errors.Wrap(err, "scan question")
		}
		l := byID[lessonID]
		if l == nil || l.Quiz == nil {
			continue
		}
		q.Options = []quiz.Option{}
		idx[questionKey{lessonID, q.ID}] = len(l.Quiz.Questions)
		l.Quiz.Questions = append(l.Quiz.Questions, q)
	}
	return idx, errors.Wrap(rows.Err(), "iterate questions")
}

func (s *SQLStore) loadOptionRows(ctx context.Context, byID map[string]*lesson.Lesson, questionIdx map[questionKey]int) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT lesson_id, question_id, id, text, correct FROM options ORDER BY lesson_id, question_id, position")
	if err != nil {
		return errors.Wrap(err, "query options")
	}
	defer rows.Close()

	for rows.Next() {
		var lessonID, questionID string
		var o quiz.Option
		if err := rows.Scan(&lessonID, &questionID, &o.ID, &o.Text, &o.Correct); err != nil {
			return errors.Wrap(err, "scan option")
		}
		i, ok := questionIdx[questionKey{lessonID, questionID}]
		if !ok {
			continue
		}
		q := &byID[lessonID].Quiz.Questions[i]
		q.Options = append(q.Options, o)
	}
	return errors.Wrap(rows.Err(), "iterate options")
}

// ============================================================================
// Save
// ============================================================================

// SaveLessons replaces everything stored with lessons in one transaction.
func (s *SQLStore) SaveLessons(ctx context.Context, lessons []*lesson.Lesson) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	for _, table := range []string{"options", "questions", "lessons"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "clear %s", table)
		}
	}

	for pos, l := range lessons {
		if err := insertLesson(ctx, tx, pos, l); err != nil {
			return errors.Wrapf(err, "lesson %s", l.ID)
		}
	}

	return errors.Wrap(tx.Commit(), "commit")
}

func insertLesson(ctx context.Context, tx *sql.Tx, pos int, l *lesson.Lesson) error {
	var quizTitle sql.NullString
	if l.Quiz != nil {
		quizTitle = sql.NullString{String: l.Quiz.Title, Valid: true}
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO lessons (id, position, title, content, quiz_title) VALUES ($1, $2, $3, $4, $5)`,
		l.ID, pos, l.Title, l.Content, quizTitle)
	if err != nil {
		return err
	}
	if l.Quiz == nil {
		return nil
	}

	for qpos, q := range l.Quiz.Questions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO questions (lesson_id, id, position, type, text) VALUES ($1, $2, $3, $4, $5)`,
			l.ID, q.ID, qpos, string(q.Type), q.Text)
		if err != nil {
			return errors.Wrapf(err, "question %s", q.ID)
		}

		for opos, o := range q.Options {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO options (lesson_id, question_id, id, position, text, correct) VALUES ($1, $2, $3, $4, $5, $6)`,
				l.ID, q.ID, o.ID, opos, o.Text, o.Correct)
			if err != nil {
				return errors.Wrapf(err, "option %s", o.ID)
			}
		}
	}
	return nil
}
