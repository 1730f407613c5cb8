package quiz

// Sheet is the read-only form a taker fills in. It carries no correctness
// flags so it can be handed to the taking surface as is.
type Sheet struct {
	Title     string
	Questions []SheetQuestion
}

type SheetQuestion struct {
	Number  int
	ID      string
	Text    string
	Input   string // radio or checkbox
	Options []SheetOption
}

type SheetOption struct {
	ID   string
	Text string
}

func NewSheet(q *Quiz) Sheet {
	sheet := Sheet{
		Title:     q.Title,
		Questions: make([]SheetQuestion, len(q.Questions)),
	}
	for i, question := range q.Questions {
		sq := SheetQuestion{
			Number:  i + 1,
			ID:      question.ID,
			Text:    question.Text,
			Input:   question.Type.InputKind(),
			Options: make([]SheetOption, len(question.Options)),
		}
		for j, o := range question.Options {
			sq.Options[j] = SheetOption{ID: o.ID, Text: o.Text}
		}
		sheet.Questions[i] = sq
	}
	return sheet
}
