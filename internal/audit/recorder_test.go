package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.Action{},
		&models.AuditLog{},
	))
	require.NoError(t, Register(db))

	return db
}

func auditCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	return count
}

func lastEntry(t *testing.T, db *gorm.DB) models.AuditLog {
	t.Helper()
	var entry models.AuditLog
	require.NoError(t, db.Order("id DESC").First(&entry).Error)
	return entry
}

func TestRecorder_CreateProducesExactlyOneEntry(t *testing.T) {
	db := newTestDB(t)

	cl := models.Client{Name: "Maria", Phone: "11987654321"}
	require.NoError(t, db.Create(&cl).Error)

	require.EqualValues(t, 1, auditCount(t, db))

	entry := lastEntry(t, db)
	assert.Equal(t, "clients", entry.TableName)
	assert.Equal(t, "insert", entry.Operation)
	require.NotNil(t, entry.RecordID)
	assert.Equal(t, cl.ID, *entry.RecordID)
	assert.Nil(t, entry.Before)
	assert.NotEmpty(t, entry.After)
	assert.Equal(t, "system", entry.Actor)
	assert.NotEmpty(t, entry.EventID)
}

func TestRecorder_UpdateCapturesBeforeAndAfter(t *testing.T) {
	db := newTestDB(t)

	cl := models.Client{Name: "Maria", Phone: "11987654321"}
	require.NoError(t, db.Create(&cl).Error)

	before := auditCount(t, db)

	require.NoError(t, db.Model(&cl).Update("notes", "retornar ligação").Error)

	require.EqualValues(t, before+1, auditCount(t, db))

	entry := lastEntry(t, db)
	assert.Equal(t, "update", entry.Operation)
	require.NotNil(t, entry.RecordID)
	assert.Equal(t, cl.ID, *entry.RecordID)

	var snapBefore, snapAfter map[string]any
	require.NoError(t, json.Unmarshal(entry.Before, &snapBefore))
	require.NoError(t, json.Unmarshal(entry.After, &snapAfter))
	assert.Empty(t, snapBefore["notes"])
	assert.Equal(t, "retornar ligação", snapAfter["notes"])
}

func TestRecorder_DeleteKeepsPriorState(t *testing.T) {
	db := newTestDB(t)

	cl := models.Client{Name: "Maria", Phone: "11987654321"}
	require.NoError(t, db.Create(&cl).Error)

	before := auditCount(t, db)

	require.NoError(t, db.Delete(&cl).Error)

	require.EqualValues(t, before+1, auditCount(t, db))

	entry := lastEntry(t, db)
	assert.Equal(t, "delete", entry.Operation)
	assert.NotEmpty(t, entry.Before)
	assert.Nil(t, entry.After)

	// the entry outlives the row it describes
	var count int64
	require.NoError(t, db.Model(&models.Client{}).Where("id = ?", cl.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecorder_FallsBackToMinimalEntry(t *testing.T) {
	db := newTestDB(t)

	// full entries carry the after snapshot; reject those at the store so
	// the recorder has to degrade
	require.NoError(t, db.Exec(`CREATE TRIGGER reject_full_entries
		BEFORE INSERT ON audit_logs
		WHEN NEW."after" IS NOT NULL
		BEGIN SELECT RAISE(ABORT, 'full entry rejected'); END`).Error)

	cl := models.Client{Name: "Maria", Phone: "11987654321"}
	require.NoError(t, db.Create(&cl).Error)

	require.EqualValues(t, 1, auditCount(t, db))

	entry := lastEntry(t, db)
	assert.Equal(t, "clients", entry.TableName)
	assert.Equal(t, "insert", entry.Operation)
	require.NotNil(t, entry.RecordID)
	assert.Equal(t, cl.ID, *entry.RecordID)
	assert.Nil(t, entry.After)
}

func TestRecorder_FailureNeverBlocksPrimaryWrite(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Migrator().DropTable(&models.AuditLog{}))

	cl := models.Client{Name: "Maria", Phone: "11987654321"}
	require.NoError(t, db.Create(&cl).Error)

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Where("id = ?", cl.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecorder_ActorFromContext(t *testing.T) {
	db := newTestDB(t)

	ctx := WithActor(context.Background(), Actor{
		Name:      "ana@clinica.com",
		IP:        "10.0.0.1",
		UserAgent: "test-agent",
	})

	cl := models.Client{Name: "Pedro", Phone: "11987654321"}
	require.NoError(t, db.WithContext(ctx).Create(&cl).Error)

	entry := lastEntry(t, db)
	assert.Equal(t, "ana@clinica.com", entry.Actor)
	assert.Equal(t, "10.0.0.1", entry.IP)
	assert.Equal(t, "test-agent", entry.UserAgent)
}

func TestRecorder_ActionsAreTracked(t *testing.T) {
	db := newTestDB(t)

	cl := models.Client{Name: "Maria", Phone: "11987654321"}
	require.NoError(t, db.Create(&cl).Error)

	ap := models.Action{
		ClientID:   cl.ID,
		Type:       "call",
		OccurredAt: time.Now().UTC(),
		Result:     "pending",
	}
	require.NoError(t, db.Create(&ap).Error)

	entry := lastEntry(t, db)
	assert.Equal(t, "actions", entry.TableName)
	assert.Equal(t, "insert", entry.Operation)
}

func TestRecorder_UntrackedTableIsIgnored(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	user := models.User{Name: "Ana", Email: "ana@clinica.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	assert.Zero(t, auditCount(t, db))
}

func TestActorFrom_Default(t *testing.T) {
	actor := ActorFrom(context.Background())
	assert.Equal(t, "system", actor.Name)
}
