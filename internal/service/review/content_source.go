package review

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// ContentSource supplies the vocabulary word list associated with a
// lesson or course. The scheduler treats it as a pure read; course and
// lesson content modeling itself lives outside this service.
type ContentSource interface {
	// LessonWords returns the word list of a single lesson.
	// Returns ErrLessonNotFound for an unknown lesson ID.
	LessonWords(ctx context.Context, lessonID string) ([]WordImport, error)

	// CourseWords returns the concatenated word lists of a course's
	// lessons in course order. Returns ErrCourseNotFound for an unknown
	// course ID.
	CourseWords(ctx context.Context, courseID string) ([]WordImport, error)
}

// Lesson is one curriculum lesson as loaded from the curriculum file.
type Lesson struct {
	ID       string       `json:"id"`
	CourseID string       `json:"course_id"`
	Order    int          `json:"order"`
	Topic    string       `json:"topic"`
	Level    string       `json:"level"`
	Words    []WordImport `json:"vocabulary"`
}

// StaticContentSource serves lesson word lists from an in-memory
// curriculum, typically loaded from a JSON file at startup.
type StaticContentSource struct {
	lessons  map[string]Lesson
	byCourse map[string][]Lesson
}

// NewStaticContentSource builds a content source from the given lessons.
// Word records inherit the lesson's topic as their category and the
// lesson's level when they don't carry their own.
func NewStaticContentSource(lessons []Lesson) *StaticContentSource {
	src := &StaticContentSource{
		lessons:  make(map[string]Lesson, len(lessons)),
		byCourse: make(map[string][]Lesson),
	}

	for _, lesson := range lessons {
		src.lessons[lesson.ID] = lesson
		if lesson.CourseID != "" {
			src.byCourse[lesson.CourseID] = append(src.byCourse[lesson.CourseID], lesson)
		}
	}

	for courseID := range src.byCourse {
		course := src.byCourse[courseID]
		sort.SliceStable(course, func(i, j int) bool {
			return course[i].Order < course[j].Order
		})
	}

	return src
}

// LoadCurriculum reads a curriculum JSON file (an array of lessons) and
// builds a StaticContentSource from it. Malformed JSON is rejected
// outright rather than partially loaded.
func LoadCurriculum(path string) (*StaticContentSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curriculum file: %w", err)
	}

	var lessons []Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return nil, fmt.Errorf("failed to parse curriculum file: %w", err)
	}

	for i, lesson := range lessons {
		if lesson.ID == "" {
			return nil, fmt.Errorf("curriculum lesson at index %d has no id", i)
		}
	}

	return NewStaticContentSource(lessons), nil
}

// Ensure StaticContentSource implements ContentSource
var _ ContentSource = (*StaticContentSource)(nil)

// LessonWords implements ContentSource.LessonWords.
func (s *StaticContentSource) LessonWords(_ context.Context, lessonID string) ([]WordImport, error) {
	lesson, ok := s.lessons[lessonID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLessonNotFound, lessonID)
	}

	return lessonWordList(lesson), nil
}

// CourseWords implements ContentSource.CourseWords.
func (s *StaticContentSource) CourseWords(_ context.Context, courseID string) ([]WordImport, error) {
	lessons, ok := s.byCourse[courseID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}

	var words []WordImport
	for _, lesson := range lessons {
		words = append(words, lessonWordList(lesson)...)
	}

	return words, nil
}

// lessonWordList copies a lesson's words, filling category and level
// defaults from the lesson itself.
func lessonWordList(lesson Lesson) []WordImport {
	words := make([]WordImport, 0, len(lesson.Words))

	for _, w := range lesson.Words {
		if w.Category == "" {
			if lesson.Topic != "" {
				w.Category = lesson.Topic
			} else {
				w.Category = "general"
			}
		}
		if w.Level == "" {
			w.Level = lesson.Level
		}
		words = append(words, w)
	}

	return words
}
