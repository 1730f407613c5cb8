// Package transfer reads and writes the backup document holding the whole
// lesson collection, and the downloadable test result.
package transfer

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/hashicorp/go-multierror"
	pkgerrors "github.com/pkg/errors"

	"github.com/eduquiz/backend/internal/domain/assessment"
	"github.com/eduquiz/backend/internal/domain/lesson"
	"github.com/eduquiz/backend/internal/domain/quiz"
)

const Version = "1.0"

const (
	BackupFilename = "eduplatform_backup.json"
	ResultFilename = "result.json"
)

var ErrInvalidDocument = errors.New("invalid import document")

var validate = validator.New()

// NewExportData builds the document for lessons. The lessons are only read.
func NewExportData(lessons []*lesson.Lesson, now time.Time) ExportData {
	data := ExportData{
		Version:    Version,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Lessons:    make([]ExportLesson, len(lessons)),
	}
	for i, l := range lessons {
		data.Lessons[i] = toExportLesson(l)
	}
	return data
}

// Export writes lessons as an indented JSON document.
func Export(w io.Writer, lessons []*lesson.Lesson, now time.Time) error {
	return encodeIndented(w, NewExportData(lessons, now))
}

// Import parses and validates a backup document. It returns either the
// complete collection or an error wrapping ErrInvalidDocument; there is no
// partial result. A bare JSON array of lessons, as written by older
// backups, is accepted too.
func Import(r io.Reader) ([]*lesson.Lesson, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "read import document")
	}

	data, err := decode(raw)
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrInvalidDocument, "decode: %v", err)
	}
	if err := Validate(data); err != nil {
		return nil, pkgerrors.Wrapf(ErrInvalidDocument, "%v", err)
	}

	lessons := make([]*lesson.Lesson, len(data.Lessons))
	for i, el := range data.Lessons {
		lessons[i] = el.toLesson()
	}
	return lessons, nil
}

func decode(raw []byte) (ExportData, error) {
	var data ExportData
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &data.Lessons); err != nil {
			return ExportData{}, err
		}
		return data, nil
	}
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return ExportData{}, err
	}
	return data, nil
}

// Validate checks the document shape and the cross-record rules the
// validator tags cannot express: unique ids (option ids unique per quiz, not
// just per question) and at most one correct option
// on single-choice questions. All problems are reported together.
func Validate(data ExportData) error {
	var result *multierror.Error

	if data.Version != "" && data.Version != Version {
		result = multierror.Append(result, pkgerrors.Errorf("unsupported version %q", data.Version))
	}

	if err := validate.Struct(data); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			result = multierror.Append(result, pkgerrors.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
	}

	lessonIDs := make(map[string]bool)
	for _, l := range data.Lessons {
		if lessonIDs[l.ID] {
			result = multierror.Append(result, pkgerrors.Errorf("duplicate lesson id %q", l.ID))
		}
		lessonIDs[l.ID] = true
		if l.Quiz == nil {
			continue
		}

		// option ids are looked up across the whole quiz when editing
		questionIDs := make(map[string]bool)
		optionIDs := make(map[string]bool)
		for _, q := range l.Quiz.Questions {
			if questionIDs[q.ID] {
				result = multierror.Append(result, pkgerrors.Errorf("lesson %q: duplicate question id %q", l.ID, q.ID))
			}
			questionIDs[q.ID] = true

			correct := 0
			for _, o := range q.Options {
				if optionIDs[o.ID] {
					result = multierror.Append(result, pkgerrors.Errorf("lesson %q: duplicate option id %q", l.ID, o.ID))
				}
				optionIDs[o.ID] = true
				if o.Correct {
					correct++
				}
			}
			if quiz.QuestionType(q.Type) == quiz.Single && correct > 1 {
				result = multierror.Append(result, pkgerrors.Errorf("question %q: single choice with %d correct options", q.ID, correct))
			}
		}
	}

	return result.ErrorOrNil()
}

// ExportResult writes a test result as an indented JSON document.
func ExportResult(w io.Writer, result assessment.TestResult) error {
	return encodeIndented(w, result)
}

func encodeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return pkgerrors.Wrap(enc.Encode(v), "encode")
}
