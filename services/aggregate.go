package services

import (
	"fmt"
	"math"
	"sort"

	courseModels "lms/models/course"
)

// EnrollmentSummary is the aggregate view of one active enrollment.
type EnrollmentSummary struct {
	Enrollment       courseModels.Enrollment `json:"enrollment"`
	Progress         int                     `json:"progress"` // percent complete, 0-100
	FirstLessonID    *uint                   `json:"first_lesson_id"`
	TotalLessons     int                     `json:"total_lessons"`
	CompletedLessons int                     `json:"completed_lessons"`
}

// LessonContext is a lesson plus its navigation neighbours within the course.
type LessonContext struct {
	Lesson           courseModels.Lesson   `json:"lesson"`
	Module           courseModels.Module   `json:"module"`
	Course           courseModels.Course   `json:"course"`
	Progress         int                   `json:"progress"`
	PreviousLessonID *uint                 `json:"previous_lesson_id"`
	NextLessonID     *uint                 `json:"next_lesson_id"`
	Modules          []courseModels.Module `json:"modules"`
}

// FlattenLessons returns the course's lessons in (module order, lesson order).
// Sorting is done here rather than trusting preload ordering so the result is
// correct for any caller.
func FlattenLessons(modules []courseModels.Module) []courseModels.Lesson {
	sorted := make([]courseModels.Module, len(modules))
	copy(sorted, modules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})

	var lessons []courseModels.Lesson
	for _, module := range sorted {
		moduleLessons := make([]courseModels.Lesson, len(module.Lessons))
		copy(moduleLessons, module.Lessons)
		sort.SliceStable(moduleLessons, func(i, j int) bool {
			return moduleLessons[i].OrderIndex < moduleLessons[j].OrderIndex
		})
		lessons = append(lessons, moduleLessons...)
	}
	return lessons
}

// PercentComplete rounds completed/total to a whole percentage. A course with
// no lessons is 0% complete, never a division error.
func PercentComplete(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// CompletedLessonCount counts progress rows whose completion timestamp is set.
func CompletedLessonCount(progresses []courseModels.Progress) int {
	count := 0
	for _, p := range progresses {
		if p.CompletedAt != nil {
			count++
		}
	}
	return count
}

// SummarizeEnrollment computes the percent-complete and first-lesson entry
// point for one enrollment. The enrollment must carry its course's module
// tree (see ListActiveEnrollments).
func SummarizeEnrollment(enrollment courseModels.Enrollment, progresses []courseModels.Progress) EnrollmentSummary {
	lessons := FlattenLessons(enrollment.Course.Modules)
	completed := CompletedLessonCount(progresses)

	summary := EnrollmentSummary{
		Enrollment:       enrollment,
		Progress:         PercentComplete(completed, len(lessons)),
		TotalLessons:     len(lessons),
		CompletedLessons: completed,
	}
	if len(lessons) > 0 {
		firstID := lessons[0].ID
		summary.FirstLessonID = &firstID
	}
	return summary
}

// BuildLessonContext locates lessonID inside the course tree and returns it
// with its module, the adjacent lesson ids (nil at either boundary) and the
// enrollment's percent-complete.
func BuildLessonContext(c courseModels.Course, lessonID uint, progresses []courseModels.Progress) (LessonContext, error) {
	lessons := FlattenLessons(c.Modules)

	index := -1
	for i, lesson := range lessons {
		if lesson.ID == lessonID {
			index = i
			break
		}
	}
	if index < 0 {
		return LessonContext{}, &NotFoundError{Message: fmt.Sprintf("Lesson %d not found in course %d", lessonID, c.ID)}
	}

	target := lessons[index]
	ctx := LessonContext{
		Lesson:   target,
		Course:   c,
		Progress: PercentComplete(CompletedLessonCount(progresses), len(lessons)),
		Modules:  c.Modules,
	}
	for _, module := range c.Modules {
		if module.ID == target.ModuleID {
			ctx.Module = module
			break
		}
	}
	if index > 0 {
		prevID := lessons[index-1].ID
		ctx.PreviousLessonID = &prevID
	}
	if index < len(lessons)-1 {
		nextID := lessons[index+1].ID
		ctx.NextLessonID = &nextID
	}
	return ctx, nil
}
