package chatflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novaition/internal/model"
)

type fakeChecker struct {
	emails map[string]bool
	nics   map[string]bool
	err    error
}

func (f *fakeChecker) EmailRegistered(_ context.Context, email string) (bool, error) {
	return f.emails[email], f.err
}

func (f *fakeChecker) NICRegistered(_ context.Context, nic string) (bool, error) {
	return f.nics[nic], f.err
}

type fakeRegistrar struct {
	got    model.Attendee
	userID string
	err    error
	calls  int
}

func (f *fakeRegistrar) Register(_ context.Context, a model.Attendee) (string, error) {
	f.calls++
	f.got = a
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

type serverErr struct{ msg string }

func (e *serverErr) Error() string       { return e.msg }
func (e *serverErr) UserMessage() string { return e.msg }

func newTestFlow(c *fakeChecker, r *fakeRegistrar) *Flow {
	if c == nil {
		c = &fakeChecker{}
	}
	if r == nil {
		r = &fakeRegistrar{userID: "abc123"}
	}
	return New(c, r)
}

func TestHappyPath(t *testing.T) {
	reg := &fakeRegistrar{userID: "doc-42"}
	f := newTestFlow(nil, reg)
	ctx := context.Background()

	assert.Equal(t, "Hey there! What's your name?", f.Greeting())

	steps := []struct {
		input string
		next  Step
	}{
		{"Amara Perera", StepEmail},
		{"amara@uni.lk", StepPhone},
		{"0712345678", StepUniversity},
		{"SLTC", StepNIC},
	}
	for _, s := range steps {
		reply := f.Next(ctx, s.input)
		require.Len(t, reply.Messages, 1)
		assert.Equal(t, s.next, f.Step())
		assert.False(t, reply.Done)
	}

	reply := f.Next(ctx, "123456789V")
	require.True(t, reply.Done)
	assert.Equal(t, "doc-42", reply.UserID)
	assert.Equal(t, StepDone, f.Step())
	assert.Equal(t, []string{"Great! Email is processing..."}, reply.Messages)

	// Assembled record
	assert.Equal(t, "Amara Perera", reg.got.Name)
	assert.Equal(t, "amara@uni.lk", reg.got.Email)
	assert.Equal(t, "0712345678", reg.got.Phone)
	assert.Equal(t, "SLTC", reg.got.University)
	assert.Equal(t, "123456789V", reg.got.NIC)
	assert.Equal(t, "0", reg.got.Attend)
}

func TestInvalidInputRepromptsWithoutAdvancing(t *testing.T) {
	f := newTestFlow(nil, nil)
	ctx := context.Background()

	reply := f.Next(ctx, "A")
	assert.Equal(t, StepName, f.Step())
	assert.Equal(t, []string{"Please enter a valid name."}, reply.Messages)

	f.Next(ctx, "Amara")
	reply = f.Next(ctx, "not-an-email")
	assert.Equal(t, StepEmail, f.Step())
	assert.Equal(t, []string{"That doesn't look like a valid email. Please try again."}, reply.Messages)

	f.Next(ctx, "amara@uni.lk")
	reply = f.Next(ctx, "12345")
	assert.Equal(t, StepPhone, f.Step())
	assert.Equal(t, []string{"Please enter a valid Mobile number."}, reply.Messages)
}

func TestDuplicateEmailReprompts(t *testing.T) {
	checker := &fakeChecker{emails: map[string]bool{"taken@uni.lk": true}}
	f := newTestFlow(checker, nil)
	ctx := context.Background()

	f.Next(ctx, "Amara")
	reply := f.Next(ctx, "taken@uni.lk")
	assert.Equal(t, StepEmail, f.Step())
	assert.Equal(t, []string{"This email is already registered. Please use a different email."}, reply.Messages)

	// A different email advances.
	f.Next(ctx, "free@uni.lk")
	assert.Equal(t, StepPhone, f.Step())
}

func TestCheckerErrorReprompts(t *testing.T) {
	checker := &fakeChecker{err: errors.New("store down")}
	f := newTestFlow(checker, nil)
	ctx := context.Background()

	f.Next(ctx, "Amara")
	reply := f.Next(ctx, "amara@uni.lk")
	assert.Equal(t, StepEmail, f.Step())
	assert.Equal(t, []string{"Sorry, I couldn't verify that email. Please try again."}, reply.Messages)
}

func TestDuplicateNICReprompts(t *testing.T) {
	checker := &fakeChecker{nics: map[string]bool{"123456789V": true}}
	reg := &fakeRegistrar{userID: "x"}
	f := newTestFlow(checker, reg)
	ctx := context.Background()

	f.Next(ctx, "Amara")
	f.Next(ctx, "amara@uni.lk")
	f.Next(ctx, "0712345678")
	f.Next(ctx, "SLTC")

	reply := f.Next(ctx, "123456789V")
	assert.Equal(t, StepNIC, f.Step())
	assert.Equal(t, []string{"This NIC is already registered. Please use a different one."}, reply.Messages)
	assert.Zero(t, reg.calls)
}

func TestRegisterFailureStaysAtNICStep(t *testing.T) {
	reg := &fakeRegistrar{err: &serverErr{msg: "This email is already registered."}}
	f := newTestFlow(nil, reg)
	ctx := context.Background()

	f.Next(ctx, "Amara")
	f.Next(ctx, "amara@uni.lk")
	f.Next(ctx, "0712345678")
	f.Next(ctx, "SLTC")

	reply := f.Next(ctx, "199912345678")
	assert.Equal(t, StepNIC, f.Step())
	assert.False(t, reply.Done)
	assert.Equal(t, []string{"Error: This email is already registered."}, reply.Messages)

	// Retry after the server recovers succeeds without restarting the flow.
	reg.err = nil
	reg.userID = "doc-9"
	reply = f.Next(ctx, "199912345678")
	assert.True(t, reply.Done)
	assert.Equal(t, "doc-9", reply.UserID)
}

func TestNetworkFailureShowsGenericMessage(t *testing.T) {
	reg := &fakeRegistrar{err: errors.New("connection refused")}
	f := newTestFlow(nil, reg)
	ctx := context.Background()

	f.Next(ctx, "Amara")
	f.Next(ctx, "amara@uni.lk")
	f.Next(ctx, "0712345678")
	f.Next(ctx, "SLTC")

	reply := f.Next(ctx, "199912345678")
	assert.Equal(t, []string{"Sorry, something went wrong. Please try again."}, reply.Messages)
	assert.Equal(t, StepNIC, f.Step())
}

func TestInputAfterDoneIsIgnored(t *testing.T) {
	f := newTestFlow(nil, &fakeRegistrar{userID: "doc-1"})
	ctx := context.Background()

	f.Next(ctx, "Amara")
	f.Next(ctx, "amara@uni.lk")
	f.Next(ctx, "0712345678")
	f.Next(ctx, "SLTC")
	f.Next(ctx, "123456789V")

	reply := f.Next(ctx, "anything")
	assert.True(t, reply.Done)
	assert.Equal(t, "doc-1", reply.UserID)
	assert.Empty(t, reply.Messages)
}

func TestBlankInputIsIgnored(t *testing.T) {
	f := newTestFlow(nil, nil)
	reply := f.Next(context.Background(), "   ")
	assert.Empty(t, reply.Messages)
	assert.Equal(t, StepName, f.Step())
}
