package notefilter

import (
	"strings"
	"testing"

	"github.com/haierkeys/notes-web-client/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genStatus() gopter.Gen {
	return gen.OneConstOf(
		domain.NoteStatusPrivate,
		domain.NoteStatusShared,
		domain.NoteStatusPublic,
	)
}

func genNote() gopter.Gen {
	return gopter.CombineGens(
		gen.Int64Range(1, 1<<31),
		gen.AlphaString(),
		gen.AlphaString(),
		genStatus(),
	).Map(func(values []interface{}) domain.Note {
		return domain.Note{
			ID:     values[0].(int64),
			Title:  values[1].(string),
			Tags:   values[2].(string),
			Status: values[3].(domain.NoteStatus),
		}
	})
}

func genNotes() gopter.Gen {
	return gen.SliceOf(genNote())
}

// 验证空过滤条件返回原列表
func TestProperty_EmptyFilterIsIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("empty search and status keep all notes in order", prop.ForAll(
		func(notes []domain.Note) bool {
			got := Apply(notes, "", "")
			if len(got) != len(notes) {
				return false
			}
			for i := range notes {
				if got[i].ID != notes[i].ID {
					return false
				}
			}
			return true
		},
		genNotes(),
	))

	properties.TestingRun(t)
}

// 验证过滤结果的每一项都满足过滤条件
func TestProperty_ResultsMatchFilter(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every result matches search and status", prop.ForAll(
		func(notes []domain.Note, search string, status domain.NoteStatus) bool {
			lower := strings.ToLower(search)
			for _, note := range Apply(notes, search, status) {
				if note.Status != status {
					return false
				}
				if lower != "" &&
					!strings.Contains(strings.ToLower(note.Title), lower) &&
					!strings.Contains(strings.ToLower(note.Tags), lower) {
					return false
				}
			}
			return true
		},
		genNotes(),
		gen.AlphaString(),
		genStatus(),
	))

	properties.TestingRun(t)
}

// 验证过滤具有幂等性
func TestProperty_FilterIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("applying the same filter twice changes nothing", prop.ForAll(
		func(notes []domain.Note, search string, status domain.NoteStatus) bool {
			once := Apply(notes, search, status)
			twice := Apply(once, search, status)
			if len(once) != len(twice) {
				return false
			}
			for i := range once {
				if once[i].ID != twice[i].ID {
					return false
				}
			}
			return true
		},
		genNotes(),
		gen.AlphaString(),
		genStatus(),
	))

	properties.TestingRun(t)
}

// 验证结果保持输入的相对顺序
func TestProperty_FilterPreservesOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("results appear in input order", prop.ForAll(
		func(notes []domain.Note, search string) bool {
			got := Apply(notes, search, "")
			// 结果应是输入的子序列
			i := 0
			for _, note := range notes {
				if i < len(got) && got[i].ID == note.ID {
					i++
				}
			}
			return i == len(got)
		},
		genNotes(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
