package domain

import "time"

// now is swapped in tests that need a fixed clock.
var now = func() time.Time { return time.Now().UTC() }

// Deletable is implemented by every entity that supports soft delete.
type Deletable interface {
	Deleted() bool
	SoftDelete() error
}

// Entity holds identity, audit timestamps, the soft-delete flag and the
// optimistic concurrency token shared by every persisted type.
type Entity struct {
	id        int64
	createdAt time.Time
	updatedAt *time.Time
	isDeleted bool
	version   int64
}

func newEntity() Entity {
	return Entity{createdAt: now()}
}

// RestoreEntity rebuilds entity metadata from persisted state.
func RestoreEntity(id int64, createdAt time.Time, updatedAt *time.Time, isDeleted bool, version int64) Entity {
	return Entity{
		id:        id,
		createdAt: createdAt,
		updatedAt: updatedAt,
		isDeleted: isDeleted,
		version:   version,
	}
}

func (e *Entity) ID() int64             { return e.id }
func (e *Entity) CreatedAt() time.Time  { return e.createdAt }
func (e *Entity) UpdatedAt() *time.Time { return e.updatedAt }
func (e *Entity) Deleted() bool         { return e.isDeleted }
func (e *Entity) Version() int64        { return e.version }

// AssignID is called by stores once the row has been inserted. An entity
// that already has an identity keeps it.
func (e *Entity) AssignID(id int64) {
	if e.id == 0 {
		e.id = id
	}
}

// SetVersion records the concurrency token acknowledged by the store.
func (e *Entity) SetVersion(version int64) {
	e.version = version
}

// SoftDelete flags the entity as deleted. Deleting twice is an error.
func (e *Entity) SoftDelete() error {
	if e.isDeleted {
		return invariant("entity is already deleted")
	}
	e.isDeleted = true
	e.touch()
	return nil
}

func (e *Entity) touch() {
	t := now()
	e.updatedAt = &t
}
