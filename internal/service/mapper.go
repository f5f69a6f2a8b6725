package service

import (
	"fmt"
	"strconv"

	"github.com/jinzhu/copier"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/practice"
)

// copyOption lets copier fill the string ids of test-taking DTOs from uint
// primary keys.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uint(0),
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				id, ok := src.(uint)
				if !ok {
					return nil, fmt.Errorf("expected uint id, got %T", src)
				}
				return formatID(id), nil
			},
		},
	},
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func copyWithIDs(to, from interface{}) error {
	return copier.CopyWithOption(to, from, copyOption)
}

func gradableQuestions(questions []model.Question) []GradableQuestion {
	out := make([]GradableQuestion, len(questions))
	for i, q := range questions {
		out[i] = GradableQuestion{ID: formatID(q.ID), CorrectAnswer: q.CorrectAnswer}
	}
	return out
}

func practiceGradable(questions []practice.Question) []GradableQuestion {
	out := make([]GradableQuestion, len(questions))
	for i, q := range questions {
		out[i] = GradableQuestion{ID: q.ID(), CorrectAnswer: q.CorrectAnswer}
	}
	return out
}

func selectedAnswers(req dto.SubmitAttemptDTO) map[string]string {
	out := make(map[string]string, len(req.Answers))
	for id, a := range req.Answers {
		out[id] = a.SelectedAnswer
	}
	return out
}

func toTestForTaking(test *model.Test) (*dto.TestForTakingDTO, error) {
	var resp dto.TestForTakingDTO
	if err := copyWithIDs(&resp, test); err != nil {
		return nil, err
	}
	resp.TotalQuestions = len(test.Questions)
	resp.Questions = make([]dto.QuestionForTakingDTO, len(test.Questions))
	for i := range test.Questions {
		if err := copyWithIDs(&resp.Questions[i], &test.Questions[i]); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

func practiceForTaking(t *practice.Test) *dto.TestForTakingDTO {
	resp := &dto.TestForTakingDTO{
		ID:             t.ID(),
		Title:          t.Title,
		Description:    t.Description,
		Category:       t.Category,
		Difficulty:     t.Difficulty,
		TimeLimit:      t.TimeLimit,
		TotalQuestions: len(t.Questions),
		PassingScore:   t.PassingScore,
		IsPractice:     true,
		Questions:      make([]dto.QuestionForTakingDTO, len(t.Questions)),
	}
	for i, q := range t.Questions {
		resp.Questions[i] = dto.QuestionForTakingDTO{
			ID:             q.ID(),
			QuestionNumber: q.Number,
			QuestionText:   q.Text,
			OptionA:        q.Options["A"],
			OptionB:        q.Options["B"],
			OptionC:        q.Options["C"],
			OptionD:        q.Options["D"],
		}
	}
	return resp
}

func practiceSummary(t *practice.Test) dto.TestSummaryDTO {
	return dto.TestSummaryDTO{
		ID:             t.ID(),
		Title:          t.Title,
		Description:    t.Description,
		Category:       t.Category,
		Difficulty:     t.Difficulty,
		TimeLimit:      t.TimeLimit,
		TotalQuestions: len(t.Questions),
		PassingScore:   t.PassingScore,
		IsPractice:     true,
	}
}

func toUserDTO(u *model.User) dto.UserDTO {
	var out dto.UserDTO
	_ = copier.Copy(&out, u)
	return out
}

func toDocumentDTO(d *model.Document) dto.DocumentDTO {
	var out dto.DocumentDTO
	_ = copier.Copy(&out, d)
	return out
}
