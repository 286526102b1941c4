package course

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/lingo/internal/question"
)

// SupportedMajor is the content format major version this build reads.
const SupportedMajor = "v1"

//go:embed data/course.json
var embedded embed.FS

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns the course bundled with the binary.
func Default() (*Course, error) {
	data, err := embedded.ReadFile("data/course.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded course: %w", err)
	}
	return Parse(data)
}

// LoadFile reads and validates a course from path.
func LoadFile(path string) (*Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read course %s: %w", path, err)
	}
	return Parse(data)
}

// Load returns the course at path, or the bundled course when path is empty.
func Load(path string) (*Course, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse validates raw content and builds the question lists.
func Parse(data []byte) (*Course, error) {
	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	var c Course
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidContent, err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}

	for mi := range c.Modules {
		m := &c.Modules[mi]
		exam, err := buildAll(m.ExamSpecs)
		if err != nil {
			return nil, fmt.Errorf("%w: module %s exam: %v", ErrInvalidContent, m.ID, err)
		}
		m.Exam = exam
		for li := range m.Lessons {
			l := &m.Lessons[li]
			quiz, err := buildAll(l.QuizSpecs)
			if err != nil {
				return nil, fmt.Errorf("%w: lesson %s: %v", ErrInvalidContent, l.ID, err)
			}
			l.Quiz = quiz
		}
	}
	return &c, nil
}

// Validate checks struct tags, the content version, and the rules the
// schema cannot express. All problems are reported together.
func Validate(c *Course) error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	if !semver.IsValid(c.Version) {
		problems = append(problems, fmt.Sprintf("version %q is not valid semver", c.Version))
	} else if semver.Major(c.Version) != SupportedMajor {
		problems = append(problems, fmt.Sprintf("version %s not supported (want %s.x)", c.Version, SupportedMajor))
	}

	modIDs := map[string]bool{}
	lessonIDs := map[string]bool{}
	for _, m := range c.Modules {
		if modIDs[m.ID] {
			problems = append(problems, fmt.Sprintf("duplicate module id %q", m.ID))
		}
		modIDs[m.ID] = true

		for _, l := range m.Lessons {
			if lessonIDs[l.ID] {
				problems = append(problems, fmt.Sprintf("duplicate lesson id %q", l.ID))
			}
			lessonIDs[l.ID] = true

			for ti, t := range l.GrammarTables {
				for ri, row := range t.Rows {
					if len(row) != len(t.Headers) {
						problems = append(problems, fmt.Sprintf("lesson %s table %d row %d: %d cells, want %d",
							l.ID, ti, ri, len(row), len(t.Headers)))
					}
				}
			}
			problems = append(problems, checkQuestions("lesson "+l.ID, l.QuizSpecs)...)
		}
		problems = append(problems, checkQuestions("module "+m.ID+" exam", m.ExamSpecs)...)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidContent, strings.Join(problems, "\n  "))
	}
	return nil
}

func checkQuestions(where string, specs []QuestionSpec) []string {
	var problems []string
	seen := map[string]bool{}
	for _, s := range specs {
		if seen[s.ID] {
			problems = append(problems, fmt.Sprintf("%s: duplicate question id %q", where, s.ID))
		}
		seen[s.ID] = true

		kind, ok := question.ParseKind(s.Type)
		if !ok {
			continue
		}
		if kind == question.KindConnect {
			if len(s.Pairs) == 0 {
				problems = append(problems, fmt.Sprintf("%s: connect question %s has no pairs", where, s.ID))
			}
			continue
		}
		found := false
		for _, o := range s.Options {
			if o == s.CorrectAnswer {
				found = true
				break
			}
		}
		if s.CorrectAnswer == "" || !found {
			problems = append(problems, fmt.Sprintf("%s: question %s: correct answer %q not among options", where, s.ID, s.CorrectAnswer))
		}
		if kind == question.KindFillGap && strings.Count(s.Question, question.GapMarker) != 1 {
			problems = append(problems, fmt.Sprintf("%s: fill-gap question %s needs exactly one %s", where, s.ID, question.GapMarker))
		}
	}
	return problems
}

func validateSchema(data []byte) error {
	compileOnce.Do(func() {
		compiled, compileErr = compileSchema()
	})
	if compileErr != nil {
		return fmt.Errorf("compile course schema: %w", compileErr)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return compiled.Validate(inst)
}

func compileSchema() (*jsonschema.Schema, error) {
	// Round-trip through JSON so numbers and slices have the shapes the
	// compiler expects.
	raw, err := json.Marshal(courseSchema)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	const url = "schema://course.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	return c.Compile(url)
}
