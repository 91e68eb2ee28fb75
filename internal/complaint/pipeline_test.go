package complaint_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hosteldesk/backend/internal/classifier"
	"hosteldesk/backend/internal/complaint"
	"hosteldesk/backend/internal/models"
	"hosteldesk/backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testSession() *models.Session {
	return &models.Session{
		ID:     "sess-1",
		UserID: "user-uuid-1",
		Email:  "me21b042@smail.iitm.ac.in",
		Name:   "Arjun Mehta",
	}
}

// TestPipeline_Unauthenticated verifies that an anonymous request stops at
// the session gate: no field validation, no classifier call, no persist.
func TestPipeline_Unauthenticated(t *testing.T) {
	// Arrange
	gate := new(MockSessionGate)
	cls := new(MockClassifier)
	store := new(MockStorage)
	gate.On("Get", "").Return(nil, session.ErrNoSession)

	p := complaint.NewPipeline(gate, cls, store)

	// Act - payload is complete and long enough, it must not matter
	result := p.Process(context.Background(), "", validSubmission())

	// Assert
	assert.Equal(t, http.StatusUnauthorized, result.Status)
	assert.False(t, result.Success)
	assert.Equal(t, "Please log in first", result.Message)
	cls.AssertNotCalled(t, "Classify", mock.Anything)
	store.AssertNotCalled(t, "SaveComplaint", mock.Anything)
}

// TestPipeline_MissingField verifies rejection before any external call,
// regardless of classifier reachability.
func TestPipeline_MissingField(t *testing.T) {
	// Arrange
	gate := new(MockSessionGate)
	cls := new(MockClassifier)
	store := new(MockStorage)
	gate.On("Get", "tok").Return(testSession(), nil)

	sub := validSubmission()
	sub.RoomNo = ""

	p := complaint.NewPipeline(gate, cls, store)

	// Act
	result := p.Process(context.Background(), "tok", sub)

	// Assert
	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Equal(t, "room number is required", result.Message)
	cls.AssertNotCalled(t, "Classify", mock.Anything)
	store.AssertNotCalled(t, "SaveComplaint", mock.Anything)
}

// TestPipeline_TooShort verifies the word-count gate fires before the
// classifier and nothing is persisted.
func TestPipeline_TooShort(t *testing.T) {
	// Arrange
	gate := new(MockSessionGate)
	cls := new(MockClassifier)
	store := new(MockStorage)
	gate.On("Get", "tok").Return(testSession(), nil)

	sub := validSubmission()
	sub.Body = "fan broken please fix soon" // 5 words

	p := complaint.NewPipeline(gate, cls, store)

	// Act
	result := p.Process(context.Background(), "tok", sub)

	// Assert
	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Contains(t, result.Message, "at least 10 words")
	cls.AssertNotCalled(t, "Classify", mock.Anything)
	store.AssertNotCalled(t, "SaveComplaint", mock.Anything)
}

// TestPipeline_ClassifierRejects verifies a rejected verdict maps to 422 and
// no record is created.
func TestPipeline_ClassifierRejects(t *testing.T) {
	// Arrange
	gate := new(MockSessionGate)
	cls := new(MockClassifier)
	store := new(MockStorage)
	sub := validSubmission()

	gate.On("Get", "tok").Return(testSession(), nil)
	cls.On("Classify", sub.Body).
		Return(classifier.Verdict{Accepted: false, Reason: "complaint rejected by content validation"})

	p := complaint.NewPipeline(gate, cls, store)

	// Act
	result := p.Process(context.Background(), "tok", sub)

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, result.Status)
	assert.Equal(t, "complaint rejected by content validation", result.Message)
	store.AssertNotCalled(t, "SaveComplaint", mock.Anything)
}

// TestPipeline_Accepted verifies the happy path: every gate passed, the
// record carries the session's user id, and the response carries the new id.
func TestPipeline_Accepted(t *testing.T) {
	// Arrange
	gate := new(MockSessionGate)
	cls := new(MockClassifier)
	store := new(MockStorage)
	sub := validSubmission()

	gate.On("Get", "tok").Return(testSession(), nil)
	cls.On("Classify", sub.Body).
		Return(classifier.Verdict{Accepted: true, Reason: "approved by content validation"})
	store.On("SaveComplaint", mock.AnythingOfType("*models.Complaint")).
		Run(func(args mock.Arguments) {
			// Simulate the id the database assigns on insert.
			args.Get(0).(*models.Complaint).ID = 77
		}).
		Return(nil).Once()

	p := complaint.NewPipeline(gate, cls, store)

	// Act
	result := p.Process(context.Background(), "tok", sub)

	// Assert
	assert.Equal(t, http.StatusOK, result.Status)
	assert.True(t, result.Success)
	assert.Equal(t, uint(77), result.ComplaintID)
	assert.NotNil(t, result.Record)
	assert.Equal(t, "user-uuid-1", result.Record.UserID)
	assert.Equal(t, sub.Body, result.Record.Body)
	store.AssertExpectations(t)
}

// TestPipeline_StorageFailure verifies a failed insert surfaces as a generic
// 500, distinct from content rejections.
func TestPipeline_StorageFailure(t *testing.T) {
	// Arrange
	gate := new(MockSessionGate)
	cls := new(MockClassifier)
	store := new(MockStorage)
	sub := validSubmission()

	gate.On("Get", "tok").Return(testSession(), nil)
	cls.On("Classify", sub.Body).
		Return(classifier.Verdict{Accepted: true, Reason: "approved by content validation"})
	store.On("SaveComplaint", mock.AnythingOfType("*models.Complaint")).
		Return(errors.New("connection refused"))

	p := complaint.NewPipeline(gate, cls, store)

	// Act
	result := p.Process(context.Background(), "tok", sub)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, result.Status)
	assert.False(t, result.Success)
	assert.Equal(t, "Server error", result.Message, "internal detail must not leak")
	assert.NotContains(t, result.Message, "connection refused")
}

// TestPipeline_NoDedup verifies that submitting identical content twice
// produces two records. This is expected behavior, not a bug.
func TestPipeline_NoDedup(t *testing.T) {
	// Arrange
	gate := new(MockSessionGate)
	cls := new(MockClassifier)
	store := new(MockStorage)
	sub := validSubmission()

	gate.On("Get", "tok").Return(testSession(), nil)
	cls.On("Classify", sub.Body).
		Return(classifier.Verdict{Accepted: true, Reason: "approved by content validation"})

	nextID := uint(100)
	store.On("SaveComplaint", mock.AnythingOfType("*models.Complaint")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Complaint).ID = nextID
			nextID++
		}).
		Return(nil).Twice()

	p := complaint.NewPipeline(gate, cls, store)

	// Act
	first := p.Process(context.Background(), "tok", sub)
	second := p.Process(context.Background(), "tok", sub)

	// Assert
	assert.True(t, first.Success)
	assert.True(t, second.Success)
	assert.NotEqual(t, first.ComplaintID, second.ComplaintID)
	store.AssertNumberOfCalls(t, "SaveComplaint", 2)
}
