// Package models defines the stored document types, their reference-expanded
// (populated) read forms, and the task enums. Stored forms keep references as
// ObjectIDs; populated forms carry the full referenced documents produced by
// the repository's $lookup expansion.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names, shared between repositories and reference declarations.
const (
	CollectionUsers       = "users"
	CollectionTasks       = "tasks"
	CollectionTaskLists   = "tasklists"
	CollectionComments    = "comments"
	CollectionAttachments = "attachments"
	CollectionProjects    = "projects"
)

// Now returns the timestamp services assign to createdAt/updatedAt on insert.
func Now() time.Time {
	return time.Now().UTC()
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether s is a known status value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// IsValid reports whether p is a known priority value.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// User is an account. The password is stored bcrypt-hashed and never
// serialized in responses.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Task is a single unit of work, optionally attached to a task list.
type Task struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Status      TaskStatus          `bson:"status" json:"status"`
	DueDate     *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Priority    TaskPriority        `bson:"priority" json:"priority"`
	User        primitive.ObjectID  `bson:"user" json:"user"`
	List        *primitive.ObjectID `bson:"list,omitempty" json:"list,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedTask is the read form of Task with its references expanded. A
// dangling user or list reference comes back as null rather than an error.
type PopulatedTask struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      TaskStatus         `bson:"status" json:"status"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Priority    TaskPriority       `bson:"priority" json:"priority"`
	User        *User              `bson:"user" json:"user"`
	List        *TaskList          `bson:"list" json:"list"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TaskList groups tasks under an owning user.
type TaskList struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	User        primitive.ObjectID   `bson:"user" json:"user"`
	Tasks       []primitive.ObjectID `bson:"tasks" json:"tasks"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedTaskList is the read form of TaskList with user and tasks expanded.
type PopulatedTaskList struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	User        *User              `bson:"user" json:"user"`
	Tasks       []Task             `bson:"tasks" json:"tasks"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Comment is a remark left on a task.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Task      primitive.ObjectID `bson:"task" json:"task"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedComment is the read form of Comment.
type PopulatedComment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Content   string             `bson:"content" json:"content"`
	User      *User              `bson:"user" json:"user"`
	Task      *Task              `bson:"task" json:"task"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Attachment is file metadata linked to a task. The file body lives on disk;
// only its location is stored.
type Attachment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FileName   string             `bson:"fileName" json:"fileName"`
	FilePath   string             `bson:"filePath" json:"filePath"`
	FileType   string             `bson:"fileType" json:"fileType"`
	Task       primitive.ObjectID `bson:"task" json:"task"`
	UploadedBy primitive.ObjectID `bson:"uploadedBy" json:"uploadedBy"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedAttachment is the read form of Attachment.
type PopulatedAttachment struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FileName   string             `bson:"fileName" json:"fileName"`
	FilePath   string             `bson:"filePath" json:"filePath"`
	FileType   string             `bson:"fileType" json:"fileType"`
	Task       *Task              `bson:"task" json:"task"`
	UploadedBy *User              `bson:"uploadedBy" json:"uploadedBy"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Project groups task lists under an owning user.
type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	User        primitive.ObjectID   `bson:"user" json:"user"`
	TaskLists   []primitive.ObjectID `bson:"taskLists" json:"taskLists"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedProject is the read form of Project.
type PopulatedProject struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	User        *User              `bson:"user" json:"user"`
	TaskLists   []TaskList         `bson:"taskLists" json:"taskLists"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
