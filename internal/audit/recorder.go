package audit

import (
	"encoding/json"
	"log"
	"reflect"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

// Recorder hooks into GORM's create/update/delete pipelines so every write
// on a tracked table yields one audit entry, no matter which component
// issued it. Audit problems never propagate into the primary statement:
// snapshots degrade to nil and a failed insert falls back to a minimal
// entry before being dropped with a log line.
type Recorder struct {
	tables map[string]bool
}

func NewRecorder(tables ...string) *Recorder {
	set := make(map[string]bool, len(tables))
	for _, t := range tables {
		set[t] = true
	}
	return &Recorder{tables: set}
}

// Register installs the recorder on db for the engine's tracked tables.
func Register(db *gorm.DB) error {
	return NewRecorder("clients", "actions").Register(db)
}

const beforeKey = "audit:before"

func (r *Recorder) Register(db *gorm.DB) error {
	if err := db.Callback().Create().After("gorm:create").Register("audit:after_create", r.afterCreate); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("audit:before_update", r.snapshotBefore); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("audit:after_update", r.afterUpdate); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("audit:before_delete", r.snapshotBefore); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("audit:after_delete", r.afterDelete); err != nil {
		return err
	}
	return nil
}

func (r *Recorder) tracked(db *gorm.DB) bool {
	if db.Error != nil || db.Statement.Schema == nil {
		return false
	}
	return r.tables[db.Statement.Table]
}

// --------------------------------------------------
// Callbacks
// --------------------------------------------------

func (r *Recorder) snapshotBefore(db *gorm.DB) {
	if !r.tracked(db) {
		return
	}

	id, ok := recordID(db)
	if !ok {
		return
	}

	var row map[string]any
	if err := r.session(db).
		Table(db.Statement.Table).
		Where("id = ?", id).
		Take(&row).Error; err != nil {
		return
	}

	if b, err := json.Marshal(row); err == nil {
		db.InstanceSet(beforeKey, b)
	}
}

func (r *Recorder) afterCreate(db *gorm.DB) {
	if !r.tracked(db) || db.RowsAffected == 0 {
		return
	}

	entry := r.newEntry(db, "insert")

	if id, ok := recordID(db); ok {
		entry.RecordID = &id
	}
	if after, err := json.Marshal(db.Statement.Dest); err == nil {
		entry.After = after
	}

	r.write(db, entry)
}

func (r *Recorder) afterUpdate(db *gorm.DB) {
	if !r.tracked(db) || db.RowsAffected == 0 {
		return
	}

	entry := r.newEntry(db, "update")

	if b, ok := db.InstanceGet(beforeKey); ok {
		entry.Before, _ = b.([]byte)
	}

	if id, ok := recordID(db); ok {
		entry.RecordID = &id

		var row map[string]any
		if err := r.session(db).
			Table(db.Statement.Table).
			Where("id = ?", id).
			Take(&row).Error; err == nil {
			if after, err := json.Marshal(row); err == nil {
				entry.After = after
			}
		}
	}

	r.write(db, entry)
}

func (r *Recorder) afterDelete(db *gorm.DB) {
	if !r.tracked(db) || db.RowsAffected == 0 {
		return
	}

	entry := r.newEntry(db, "delete")

	if id, ok := recordID(db); ok {
		entry.RecordID = &id
	}
	if b, ok := db.InstanceGet(beforeKey); ok {
		entry.Before, _ = b.([]byte)
	}

	r.write(db, entry)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (r *Recorder) newEntry(db *gorm.DB, op string) *models.AuditLog {
	actor := ActorFrom(db.Statement.Context)

	return &models.AuditLog{
		EventID:   uuid.NewString(),
		TableName: db.Statement.Table,
		Operation: op,
		Actor:     actor.Name,
		IP:        actor.IP,
		UserAgent: actor.UserAgent,
	}
}

func (r *Recorder) session(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true, SkipHooks: true})
}

func (r *Recorder) write(db *gorm.DB, entry *models.AuditLog) {
	sess := r.session(db)

	if err := sess.Create(entry).Error; err == nil {
		return
	}

	// degrade: keep the fact of the mutation even if snapshots won't fit
	minimal := &models.AuditLog{
		EventID:   entry.EventID,
		TableName: entry.TableName,
		Operation: entry.Operation,
		RecordID:  entry.RecordID,
		Actor:     entry.Actor,
	}
	if err := sess.Create(minimal).Error; err != nil {
		log.Println("audit: entry dropped:", err)
	}
}

// recordID resolves the primary key from the statement's model. Batch
// writes and keyless statements return false; the entry is still recorded,
// just without a record id.
func recordID(db *gorm.DB) (uint, bool) {
	stmt := db.Statement
	if stmt.Schema == nil || stmt.Schema.PrioritizedPrimaryField == nil {
		return 0, false
	}
	if stmt.ReflectValue.Kind() != reflect.Struct {
		return 0, false
	}

	v, zero := stmt.Schema.PrioritizedPrimaryField.ValueOf(stmt.Context, stmt.ReflectValue)
	if zero {
		return 0, false
	}

	id, ok := v.(uint)
	return id, ok
}
