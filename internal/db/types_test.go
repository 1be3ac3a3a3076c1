package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{ApplicationPending, ApplicationReviewing, true},
		{ApplicationPending, ApplicationInterviewing, true},
		{ApplicationPending, ApplicationWithdrawn, true},
		{ApplicationPending, ApplicationOffered, false},
		{ApplicationPending, ApplicationRejected, false},
		{ApplicationReviewing, ApplicationInterviewing, true},
		{ApplicationReviewing, ApplicationOffered, true},
		{ApplicationReviewing, ApplicationRejected, true},
		{ApplicationReviewing, ApplicationWithdrawn, false},
		{ApplicationReviewing, ApplicationPending, false},
		{ApplicationInterviewing, ApplicationOffered, true},
		{ApplicationInterviewing, ApplicationRejected, true},
		{ApplicationInterviewing, ApplicationWithdrawn, false},
		{ApplicationOffered, ApplicationRejected, false},
		{ApplicationOffered, ApplicationWithdrawn, false},
		{ApplicationRejected, ApplicationReviewing, false},
		{ApplicationWithdrawn, ApplicationPending, false},
		{ApplicationWithdrawn, ApplicationReviewing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleEmployee.Valid())
	assert.True(t, RoleEmployer.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestAvailability_Valid(t *testing.T) {
	assert.True(t, AvailabilityActivelyLooking.Valid())
	assert.True(t, AvailabilityOpen.Valid())
	assert.True(t, AvailabilityNotLooking.Valid())
	assert.False(t, Availability("retired").Valid())
}

func TestJobStatus_Valid(t *testing.T) {
	for _, s := range []JobStatus{JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusClosed} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, JobStatus("archived").Valid())
}

func TestStringArray_Scan(t *testing.T) {
	t.Run("from bytes", func(t *testing.T) {
		var a StringArray
		require.NoError(t, a.Scan([]byte(`["cursor","copilot"]`)))
		assert.Equal(t, StringArray{"cursor", "copilot"}, a)
	})

	t.Run("from string", func(t *testing.T) {
		var a StringArray
		require.NoError(t, a.Scan(`["claude-code"]`))
		assert.Equal(t, StringArray{"claude-code"}, a)
	})

	t.Run("nil leaves array empty", func(t *testing.T) {
		var a StringArray
		require.NoError(t, a.Scan(nil))
		assert.Empty(t, a)
	})
}

func TestStringArray_Value(t *testing.T) {
	a := StringArray{"cursor", "copilot"}
	v, err := a.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["cursor","copilot"]`, string(v.([]byte)))
}

func TestJobPostingInput_Validate(t *testing.T) {
	valid := func() *JobPostingInput {
		return &JobPostingInput{
			Title:       "Backend Engineer",
			Description: "Build things",
			SalaryMin:   120000,
			SalaryMax:   160000,
			Evaluation:  "Pairing session using your preferred AI tools",
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		in := valid()
		in.Title = ""
		assert.Error(t, in.Validate())
	})

	t.Run("missing salary bounds", func(t *testing.T) {
		in := valid()
		in.SalaryMin = 0
		assert.Error(t, in.Validate())

		in = valid()
		in.SalaryMax = 0
		assert.Error(t, in.Validate())
	})

	t.Run("ceiling below floor", func(t *testing.T) {
		in := valid()
		in.SalaryMin = 160000
		in.SalaryMax = 120000
		assert.Error(t, in.Validate())
	})

	t.Run("equal bounds allowed", func(t *testing.T) {
		in := valid()
		in.SalaryMin = 150000
		in.SalaryMax = 150000
		assert.NoError(t, in.Validate())
	})

	t.Run("missing evaluation narrative", func(t *testing.T) {
		in := valid()
		in.Evaluation = ""
		assert.Error(t, in.Validate())
	})
}

func TestCandidateProfileInput_IsComplete(t *testing.T) {
	complete := func() *CandidateProfileInput {
		return &CandidateProfileInput{
			FirstName:    "Sam",
			LastName:     "Rivera",
			Email:        "sam@example.com",
			Headline:     "Agentic workflow enthusiast",
			Location:     "Berlin",
			Tools:        []string{"cursor"},
			Availability: AvailabilityOpen,
		}
	}

	assert.True(t, complete().IsComplete())

	in := complete()
	in.Headline = ""
	assert.False(t, in.IsComplete())

	in = complete()
	in.Tools = nil
	assert.False(t, in.IsComplete())
}
