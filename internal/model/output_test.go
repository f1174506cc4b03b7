package model

import "testing"

func TestSortOutputsDisplayOrder(t *testing.T) {
	outputs := []Output{
		{ID: "3", OutputType: OutputTypeParentEmail},
		{ID: "1", OutputType: OutputTypeStudentRecap},
		{ID: "2", OutputType: OutputTypePracticePlan},
	}

	SortOutputs(outputs)

	want := []OutputType{OutputTypeStudentRecap, OutputTypePracticePlan, OutputTypeParentEmail}
	for i, outputType := range want {
		if outputs[i].OutputType != outputType {
			t.Fatalf("outputs[%d] = %s, want %s", i, outputs[i].OutputType, outputType)
		}
	}
}

func TestSortOutputsUnknownTypeLast(t *testing.T) {
	outputs := []Output{
		{ID: "x", OutputType: OutputType("LESSON_SUMMARY_V2")},
		{ID: "1", OutputType: OutputTypeStudentRecap},
	}

	SortOutputs(outputs)

	if outputs[0].OutputType != OutputTypeStudentRecap {
		t.Fatalf("known type should sort first, got %s", outputs[0].OutputType)
	}
	if outputs[1].ID != "x" {
		t.Fatal("unknown type should sort last")
	}
}

func TestApplyEditCapturesOriginalOnce(t *testing.T) {
	output := Output{Content: "generated text"}

	output.ApplyEdit("first edit")
	if output.OriginalContent == nil || *output.OriginalContent != "generated text" {
		t.Fatal("first edit did not capture the generated content")
	}
	if !output.IsEdited {
		t.Fatal("IsEdited not set after edit")
	}

	output.ApplyEdit("second edit")
	if *output.OriginalContent != "generated text" {
		t.Fatalf("second edit overwrote the original: %q", *output.OriginalContent)
	}
	if output.Content != "second edit" {
		t.Fatalf("content = %q, want second edit", output.Content)
	}
}

func TestRevertRestoresOriginal(t *testing.T) {
	output := Output{Content: "generated text"}
	output.ApplyEdit("edited")

	if !output.Revert() {
		t.Fatal("Revert() = false on edited output")
	}
	if output.Content != "generated text" {
		t.Fatalf("content = %q, want generated text", output.Content)
	}
	if output.IsEdited {
		t.Fatal("IsEdited still set after revert")
	}

	// OriginalContent survives so an edit-revert-edit cycle stays anchored to
	// the first-generated text.
	output.ApplyEdit("edited again")
	if !output.Revert() {
		t.Fatal("Revert() = false after second edit")
	}
	if output.Content != "generated text" {
		t.Fatalf("content = %q after second revert, want generated text", output.Content)
	}
}

func TestRevertWithoutEdit(t *testing.T) {
	output := Output{Content: "generated text"}
	if output.Revert() {
		t.Fatal("Revert() = true on never-edited output")
	}
	if output.Content != "generated text" {
		t.Fatal("failed revert mutated content")
	}
}

func TestLessonStatusPredicates(t *testing.T) {
	inFlight := []LessonStatus{LessonStatusTranscribing, LessonStatusExtracting, LessonStatusGenerating}
	for _, status := range inFlight {
		if !status.InFlight() {
			t.Fatalf("%s.InFlight() = false", status)
		}
	}
	for _, status := range []LessonStatus{LessonStatusCreated, LessonStatusUploaded, LessonStatusCompleted, LessonStatusFailed} {
		if status.InFlight() {
			t.Fatalf("%s.InFlight() = true", status)
		}
	}

	for _, status := range []LessonStatus{LessonStatusFailed, LessonStatusUploaded} {
		if !status.Retryable() {
			t.Fatalf("%s.Retryable() = false", status)
		}
	}
	for _, status := range []LessonStatus{LessonStatusCreated, LessonStatusTranscribing, LessonStatusCompleted} {
		if status.Retryable() {
			t.Fatalf("%s.Retryable() = true", status)
		}
	}
}
