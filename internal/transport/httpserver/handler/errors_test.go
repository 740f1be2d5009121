package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"team-tracker-go/internal/domain/project"
	"team-tracker-go/pkg/logger"
)

func TestFailMapsErrors(t *testing.T) {
	h := &Handlers{log: logger.Nop()}

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"foreign key", fmt.Errorf("create task: %w", gorm.ErrForeignKeyViolated), http.StatusBadRequest, "invalid_reference"},
		{"not a member", project.ErrNotTeamMember, http.StatusForbidden, "not_team_member"},
		{"missing project", fmt.Errorf("lookup: %w", project.ErrProjectNotFound), http.StatusNotFound, "project_not_found"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.fail(rec, "test.op", tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var body errorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}
