package lesson

import "github.com/eduquiz/backend/internal/id"

// Collection is the full set of lessons loaded from and saved to storage
// as one unit.
type Collection struct {
	Lessons []*Lesson
	ids     id.Generator
}

// Stats summarises a collection for the lesson list.
type Stats struct {
	Lessons int
	Quizzes int // lessons whose quiz has at least one question
}

func NewCollection(lessons []*Lesson, ids id.Generator) *Collection {
	if ids == nil {
		ids = id.Random
	}
	if lessons == nil {
		lessons = []*Lesson{}
	}
	return &Collection{Lessons: lessons, ids: ids}
}

func (c *Collection) Find(lessonID string) *Lesson {
	for _, l := range c.Lessons {
		if l.ID == lessonID {
			return l
		}
	}
	return nil
}

// Create appends a new lesson with default content.
func (c *Collection) Create(title string) *Lesson {
	l := New(c.ids, title)
	c.Lessons = append(c.Lessons, l)
	return l
}

// Update changes title and content. It reports false for an unknown id.
func (c *Collection) Update(lessonID, title, content string) bool {
	l := c.Find(lessonID)
	if l == nil {
		return false
	}
	l.Title = title
	l.Content = content
	return true
}

// Delete removes a lesson. Unknown ids are ignored; removing the only
// remaining lesson returns ErrLastLesson.
func (c *Collection) Delete(lessonID string) (bool, error) {
	idx := -1
	for i, l := range c.Lessons {
		if l.ID == lessonID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	if len(c.Lessons) == 1 {
		return false, ErrLastLesson
	}
	c.Lessons = append(c.Lessons[:idx], c.Lessons[idx+1:]...)
	return true, nil
}

// Replace swaps the whole content of the collection in one step.
func (c *Collection) Replace(lessons []*Lesson) {
	if lessons == nil {
		lessons = []*Lesson{}
	}
	c.Lessons = lessons
}

// Snapshot deep-copies every lesson so the result can be handed to another
// goroutine while editing continues.
func (c *Collection) Snapshot() []*Lesson {
	out := make([]*Lesson, len(c.Lessons))
	for i, l := range c.Lessons {
		out[i] = l.Clone()
	}
	return out
}

func (c *Collection) Stats() Stats {
	s := Stats{Lessons: len(c.Lessons)}
	for _, l := range c.Lessons {
		if l.Quiz.HasQuestions() {
			s.Quizzes++
		}
	}
	return s
}
