package quiz_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/eduquiz/backend/internal/domain/quiz"
	"github.com/eduquiz/backend/internal/id"
)

// sequentialIDs returns a generator producing id-1, id-2, ...
func sequentialIDs() id.Generator {
	n := 0
	return id.GeneratorFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func newEditor() *quiz.Editor {
	return quiz.NewEditor(quiz.New("Knowledge check"), sequentialIDs())
}

func countCorrect(q *quiz.Question) int {
	return len(q.CorrectIDs())
}

func TestNew_DefaultTitle(t *testing.T) {
	q := quiz.New("")
	if q.Title != quiz.DefaultTitle {
		t.Errorf("expected title %q, got %q", quiz.DefaultTitle, q.Title)
	}
	if len(q.Questions) != 0 {
		t.Errorf("expected no questions, got %d", len(q.Questions))
	}
}

func TestAddQuestion_DefaultOptions(t *testing.T) {
	e := newEditor()
	qid := e.AddQuestion(quiz.Multiple)

	q := e.Quiz().Question(qid)
	if q == nil {
		t.Fatal("expected question to be added")
	}
	if q.Type != quiz.Multiple {
		t.Errorf("expected type %q, got %q", quiz.Multiple, q.Type)
	}
	if len(q.Options) != 2 {
		t.Fatalf("expected 2 default options, got %d", len(q.Options))
	}
	if q.Options[0].Correct || !q.Options[1].Correct {
		t.Error("expected only the second default option to be correct")
	}
}

func TestAddQuestion_UnknownTypeFallsBackToSingle(t *testing.T) {
	e := newEditor()
	qid := e.AddQuestion(quiz.QuestionType("essay"))

	if got := e.Quiz().Question(qid).Type; got != quiz.Single {
		t.Errorf("expected %q, got %q", quiz.Single, got)
	}
}

func TestRemoveQuestion(t *testing.T) {
	e := newEditor()
	first := e.AddQuestion(quiz.Single)
	second := e.AddQuestion(quiz.Single)

	if !e.RemoveQuestion(first) {
		t.Fatal("expected removal to report a change")
	}
	if len(e.Quiz().Questions) != 1 || e.Quiz().Questions[0].ID != second {
		t.Errorf("expected only %q to remain, got %+v", second, e.Quiz().Questions)
	}
}

func TestRemoveQuestion_AbsentIDLeavesQuizUnchanged(t *testing.T) {
	e := newEditor()
	e.AddQuestion(quiz.Single)
	e.AddQuestion(quiz.Multiple)
	before := e.Quiz().Clone()

	if e.RemoveQuestion("missing") {
		t.Error("expected no change for an absent id")
	}
	if !reflect.DeepEqual(before, e.Quiz()) {
		t.Error("expected quiz to be unchanged")
	}
}

func TestStaleReferencesAreIgnored(t *testing.T) {
	e := newEditor()
	qid := e.AddQuestion(quiz.Single)
	before := e.Quiz().Clone()

	cases := []struct {
		name string
		cmd  quiz.Command
	}{
		{"question text", quiz.SetQuestionText{QuestionID: "gone", Text: "x"}},
		{"option text", quiz.SetOptionText{OptionID: "gone", Text: "x"}},
		{"add option", quiz.AddOption{QuestionID: "gone"}},
		{"remove option", quiz.RemoveOption{QuestionID: qid, OptionID: "gone"}},
		{"correctness unknown question", quiz.SetOptionCorrectness{QuestionID: "gone", OptionID: "id-2", Checked: true}},
		{"correctness unknown option", quiz.SetOptionCorrectness{QuestionID: qid, OptionID: "gone", Checked: true}},
		{"remove question", quiz.RemoveQuestion{QuestionID: "gone"}},
	}

	for _, tc := range cases {
		if e.Apply(tc.cmd) {
			t.Errorf("%s: expected command to be ignored", tc.name)
		}
	}
	if !reflect.DeepEqual(before, e.Quiz()) {
		t.Error("expected quiz to be unchanged after stale commands")
	}
}

func TestSetTexts(t *testing.T) {
	e := newEditor()
	qid := e.AddQuestion(quiz.Single)
	oid := e.Quiz().Question(qid).Options[0].ID

	e.Apply(quiz.SetQuestionText{QuestionID: qid, Text: "What is Go?"})
	e.Apply(quiz.SetOptionText{OptionID: oid, Text: "A language"})
	e.Apply(quiz.SetTitle{Title: "Basics"})

	q := e.Quiz().Question(qid)
	if q.Text != "What is Go?" {
		t.Errorf("expected question text to change, got %q", q.Text)
	}
	if q.Options[0].Text != "A language" {
		t.Errorf("expected option text to change, got %q", q.Options[0].Text)
	}
	if e.Quiz().Title != "Basics" {
		t.Errorf("expected title %q, got %q", "Basics", e.Quiz().Title)
	}
}

func TestAddOption_NotCorrect(t *testing.T) {
	e := newEditor()
	qid := e.AddQuestion(quiz.Single)

	oid := e.AddOption(qid)
	if oid == "" {
		t.Fatal("expected option id")
	}
	o := e.Quiz().Question(qid).Option(oid)
	if o == nil || o.Correct || o.Text != quiz.DefaultOptionText {
		t.Errorf("expected a non-correct default option, got %+v", o)
	}
}

func TestSetOptionCorrectness_SingleKeepsExactlyOneCorrect(t *testing.T) {
	e := newEditor()
	qid := e.AddQuestion(quiz.Single)
	e.AddOption(qid)
	e.AddOption(qid)
	options := e.Quiz().Question(qid).Options

	calls := []struct {
		option  int
		checked bool
	}{
		{0, true}, {2, true}, {2, false}, {1, true}, {3, false}, {0, true}, {3, true},
	}
	for i, c := range calls {
		e.SetOptionCorrectness(qid, options[c.option].ID, c.checked)
		q := e.Quiz().Question(qid)
		if n := countCorrect(q); n != 1 {
			t.Fatalf("call %d: expected exactly one correct option, got %d", i, n)
		}
		if !q.Options[c.option].Correct {
			t.Fatalf("call %d: expected option %d to be the correct one", i, c.option)
		}
	}
}

func TestSetOptionCorrectness_MultipleTogglesIndependently(t *testing.T) {
	e := newEditor()
	qid := e.AddQuestion(quiz.Multiple)
	options := e.Quiz().Question(qid).Options

	e.SetOptionCorrectness(qid, options[0].ID, true)
	q := e.Quiz().Question(qid)
	if countCorrect(q) != 2 {
		t.Fatalf("expected both options correct, got %d", countCorrect(q))
	}

	e.SetOptionCorrectness(qid, options[1].ID, false)
	q = e.Quiz().Question(qid)
	if !q.Options[0].Correct || q.Options[1].Correct {
		t.Errorf("expected only the first option correct, got %+v", q.Options)
	}
}

func TestClone_DoesNotShareOptions(t *testing.T) {
	e := newEditor()
	qid := e.AddQuestion(quiz.Single)
	snapshot := e.Quiz().Clone()

	e.SetOptionText(e.Quiz().Question(qid).Options[0].ID, "changed")

	if snapshot.Questions[0].Options[0].Text == "changed" {
		t.Error("expected snapshot to be isolated from later edits")
	}
}
