package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parseSchema(t *testing.T, model interface{}) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

// A DeletedAt column on HealthLog would keep the soft-deleted row occupying
// the unique (user_id, log_date) slot: the upsert would fire its conflict
// update against the dead row and the day could never be re-logged.
func TestHealthLog_DeletesAreHard(t *testing.T) {
	s := parseSchema(t, &HealthLog{})

	assert.Nil(t, s.LookUpField("DeletedAt"))

	userID := s.LookUpField("UserID")
	logDate := s.LookUpField("LogDate")
	require.NotNil(t, userID)
	require.NotNil(t, logDate)
	assert.Equal(t, "idx_health_user_date", userID.TagSettings["UNIQUEINDEX"])
	assert.Equal(t, "idx_health_user_date", logDate.TagSettings["UNIQUEINDEX"])
}

// Messages are hard-deleted too: a cleared thread must not resurface
// through soft-delete-aware queries.
func TestMessage_DeletesAreHard(t *testing.T) {
	s := parseSchema(t, &Message{})
	assert.Nil(t, s.LookUpField("DeletedAt"))
}
