package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shangobashi/NoteSquared-C/internal/db"
	"github.com/shangobashi/NoteSquared-C/internal/model"
)

// fakeOutputRepo overrides only the output methods; the embedded interface
// panics if a handler reaches anything else.
type fakeOutputRepo struct {
	db.Repository
	outputs map[string]*model.Output
	updated *model.Output
}

func (r *fakeOutputRepo) GetOutputForOwner(_ context.Context, _, outputID string) (*model.Output, error) {
	output, ok := r.outputs[outputID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *output
	return &copied, nil
}

func (r *fakeOutputRepo) UpdateOutput(_ context.Context, output *model.Output) error {
	r.updated = output
	copied := *output
	r.outputs[output.ID] = &copied
	return nil
}

func newOutputTestContext(t *testing.T, repo db.Repository, method, body string, outputID string) (*gin.Context, *httptest.ResponseRecorder, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	var reqBody *bytes.Buffer
	if body != "" {
		reqBody = bytes.NewBufferString(body)
	} else {
		reqBody = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, "/v1/outputs/"+outputID, reqBody)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "output_id", Value: outputID}}
	c.Set(userIDKey, "u-1")

	handler := &Handler{repo: repo, log: zerolog.Nop()}
	return c, recorder, handler
}

func TestUpdateOutputCapturesOriginal(t *testing.T) {
	repo := &fakeOutputRepo{outputs: map[string]*model.Output{
		"o-1": {ID: "o-1", LessonID: "l-1", OutputType: model.OutputTypeStudentRecap, Content: "generated"},
	}}

	c, recorder, handler := newOutputTestContext(t, repo, http.MethodPatch, `{"content":"edited"}`, "o-1")
	handler.UpdateOutput(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	if repo.updated == nil {
		t.Fatal("output not persisted")
	}
	if repo.updated.Content != "edited" || !repo.updated.IsEdited {
		t.Fatalf("persisted output = %+v", repo.updated)
	}
	if repo.updated.OriginalContent == nil || *repo.updated.OriginalContent != "generated" {
		t.Fatal("first edit did not capture the generated content")
	}
}

func TestRevertOutputRestoresOriginal(t *testing.T) {
	original := "generated"
	repo := &fakeOutputRepo{outputs: map[string]*model.Output{
		"o-1": {
			ID:              "o-1",
			LessonID:        "l-1",
			OutputType:      model.OutputTypeParentEmail,
			Content:         "edited",
			OriginalContent: &original,
			IsEdited:        true,
		},
	}}

	c, recorder, handler := newOutputTestContext(t, repo, http.MethodPost, "", "o-1")
	handler.RevertOutput(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var resp model.Output
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Content != "generated" || resp.IsEdited {
		t.Fatalf("reverted output = %+v", resp)
	}
	if repo.updated == nil || repo.updated.Content != "generated" {
		t.Fatal("revert not persisted")
	}
}

func TestRevertOutputWithoutEdit(t *testing.T) {
	repo := &fakeOutputRepo{outputs: map[string]*model.Output{
		"o-1": {ID: "o-1", LessonID: "l-1", OutputType: model.OutputTypePracticePlan, Content: "generated"},
	}}

	c, recorder, handler := newOutputTestContext(t, repo, http.MethodPost, "", "o-1")
	handler.RevertOutput(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for never-edited output", recorder.Code)
	}
	if repo.updated != nil {
		t.Fatal("failed revert should not persist anything")
	}
}

func TestOutputNotFound(t *testing.T) {
	repo := &fakeOutputRepo{outputs: map[string]*model.Output{}}

	c, recorder, handler := newOutputTestContext(t, repo, http.MethodGet, "", "missing")
	handler.GetOutput(c)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
}

func TestShareOutput(t *testing.T) {
	repo := &fakeOutputRepo{outputs: map[string]*model.Output{
		"o-1": {ID: "o-1", LessonID: "l-1", OutputType: model.OutputTypeParentEmail, Content: "generated"},
	}}

	c, recorder, handler := newOutputTestContext(t, repo, http.MethodPost, "", "o-1")
	handler.ShareOutput(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if repo.updated == nil || !repo.updated.IsShared {
		t.Fatal("share flag not persisted")
	}
}
