// Package domain defines the persistence models for executors, processes,
// chat messages, and per-recipient read tracking. These types are mapped
// with GORM and form the core data layer of the process-chat application.
package domain

import "time"

// Executor kinds. An executor is either a concrete actor (a person able to
// log in) or a group. A flat kind tag is used instead of an inheritance
// hierarchy; group rows simply leave the actor-only columns zero-valued.
const (
	KindActor = "actor"
	KindGroup = "group"
)

// Executor represents an identity that can send and receive chat messages
// and participate in processes.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: unique short name (login for actors, group name for groups).
//   - FullName: human-readable display name.
//   - Kind: "actor" or "group" (enforced by DB constraint).
//   - Code: optional numeric actor code from an external directory.
//   - Active: whether an actor may currently participate; always false for groups.
//   - Email / Phone: actor contact details, empty for groups.
type Executor struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(128);not null;uniqueIndex:ux_executor_name"`
	FullName  string    `json:"full_name"  gorm:"type:varchar(255);not null"`
	Kind      string    `json:"kind"       gorm:"type:varchar(16);not null;check:kind IN ('actor','group')"`
	Code      *int64    `json:"code,omitempty" gorm:"index:idx_executor_code"`
	Active    bool      `json:"active"`
	Email     string    `json:"email,omitempty" gorm:"type:varchar(255)"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(32)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Executor.
func (Executor) TableName() string { return "executors" }

// IsActor reports whether the executor is a concrete actor (not a group).
func (e *Executor) IsActor() bool { return e.Kind == KindActor }

// Deployment is a versioned process definition. Its name doubles as the
// display name of every chat room scoped to a process started from it.
type Deployment struct {
	ID        int64     `json:"id"      gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"    gorm:"type:varchar(255);not null;index:idx_deployment_name"`
	Version   int       `json:"version" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Deployment.
func (Deployment) TableName() string { return "deployments" }

// Process is a running workflow instance. Each process scopes exactly one
// chat room; messages and recipient entries hang off it and are removed
// with it.
type Process struct {
	ID           int64     `json:"id"            gorm:"primaryKey;autoIncrement"`
	DeploymentID int64     `json:"deployment_id" gorm:"not null;index"`
	CreatedAt    time.Time `json:"created_at"`

	// Deployment supplies the room display name.
	Deployment Deployment `json:"deployment" gorm:"foreignKey:DeploymentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Process.
func (Process) TableName() string { return "processes" }

// ChatMessage is a single message posted into a process chat room.
//
// The primary key is an auto-increment sequence, so identifier order is
// creation order by construction. Read-boundary operations compare against
// this sequence; do not switch the key to a random identifier without also
// reworking MarkReadBefore.
//
// Fields:
//   - ID: monotonic int64 sequence, assigned by the database on insert.
//   - ProcessID: owning process instance (immutable after creation).
//   - AuthorID: executor who created the message (immutable).
//   - Content: opaque text payload; the only mutable field.
//   - CreatedAt: set at creation, immutable.
type ChatMessage struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement"`
	ProcessID int64     `json:"process_id" gorm:"not null;index:idx_message_process"`
	AuthorID  string    `json:"author_id"  gorm:"type:char(36);not null;index"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Process is the owning instance. Messages are cascade-deleted when
	// their process is removed.
	Process Process `json:"-" gorm:"foreignKey:ProcessID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ChatMessage.
func (ChatMessage) TableName() string { return "chat_messages" }

// ChatMessageRecipient tracks, per (message, executor), whether and when the
// message was read. ReadAt is null while unread and is set exactly once by
// the bulk mark-read path; there is no reverse transition.
//
// Exactly one row exists per (message, executor) pair, enforced by
// ux_recipient_message_executor. A violation means the caller attempted a
// second fan-out for the same message and must fail loudly.
type ChatMessageRecipient struct {
	ID         int64      `json:"id"          gorm:"primaryKey;autoIncrement"`
	MessageID  int64      `json:"message_id"  gorm:"not null;uniqueIndex:ux_recipient_message_executor,priority:1;index:idx_recipient_message"`
	ExecutorID string     `json:"executor_id" gorm:"type:char(36);not null;uniqueIndex:ux_recipient_message_executor,priority:2;index:idx_recipient_executor"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	// Message is the tracked message. Recipient rows are cascade-deleted
	// with it; they must never outlive it.
	Message ChatMessage `json:"-" gorm:"foreignKey:MessageID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ChatMessageRecipient.
func (ChatMessageRecipient) TableName() string { return "chat_message_recipients" }

// IsRead reports whether the entry has been marked read.
func (r *ChatMessageRecipient) IsRead() bool { return r.ReadAt != nil }

// ChatRoom is the derived per-process summary of a chat as seen by one
// executor. It is computed fresh on every query and never stored; caching
// the unread count would trade a live join for an invalidation problem.
type ChatRoom struct {
	ProcessID   int64  `json:"process_id"`
	ProcessName string `json:"process_name"`
	UnreadCount int64  `json:"unread_count"`
}
