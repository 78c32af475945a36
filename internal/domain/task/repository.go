package task

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	ListTasks(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	CreateTask(ctx context.Context, t *Task) error
	UpdateColumn(ctx context.Context, id int64, column Column) error
	SetAssignees(ctx context.Context, taskID int64, employeeIDs []int64) error

	ListComments(ctx context.Context, taskID int64) ([]Comment, error)
	GetComment(ctx context.Context, taskID, id int64) (*Comment, error)
	CreateComment(ctx context.Context, c *Comment) error
	DeleteComment(ctx context.Context, taskID, id int64) error

	ListAttachments(ctx context.Context, taskID int64) ([]Attachment, error)
	GetAttachment(ctx context.Context, taskID, id int64) (*Attachment, error)
	CreateAttachment(ctx context.Context, a *Attachment) error
	DeleteAttachment(ctx context.Context, taskID, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListTasks(ctx context.Context) ([]Task, error) {
	var list []Task
	if err := r.db.WithContext(ctx).Preload("AssigneeRows").Order("created_at, id").Find(&list).Error; err != nil {
		return nil, err
	}
	for i := range list {
		list[i].fillAssignees()
	}
	return list, nil
}

func (r *repository) GetTask(ctx context.Context, id int64) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).Preload("AssigneeRows").First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	t.fillAssignees()
	return &t, nil
}

func (r *repository) CreateTask(ctx context.Context, t *Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return err
	}
	t.fillAssignees()
	return nil
}

// UpdateColumn changes only board_column.
func (r *repository) UpdateColumn(ctx context.Context, id int64, column Column) error {
	res := r.db.WithContext(ctx).Model(&Task{}).Where("id = ?", id).
		Updates(map[string]any{"board_column": column, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *repository) SetAssignees(ctx context.Context, taskID int64, employeeIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&Assignee{}).Error; err != nil {
			return err
		}
		if len(employeeIDs) == 0 {
			return nil
		}
		rows := make([]Assignee, len(employeeIDs))
		for i, id := range employeeIDs {
			rows[i] = Assignee{TaskID: taskID, EmployeeID: id}
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
}

func (r *repository) ListComments(ctx context.Context, taskID int64) ([]Comment, error) {
	var list []Comment
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at, id").Find(&list).Error
	return list, err
}

func (r *repository) GetComment(ctx context.Context, taskID, id int64) (*Comment, error) {
	var c Comment
	err := r.db.WithContext(ctx).Where("task_id = ? AND id = ?", taskID, id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	return &c, err
}

func (r *repository) CreateComment(ctx context.Context, c *Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) DeleteComment(ctx context.Context, taskID, id int64) error {
	res := r.db.WithContext(ctx).Where("task_id = ? AND id = ?", taskID, id).Delete(&Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *repository) ListAttachments(ctx context.Context, taskID int64) ([]Attachment, error) {
	var list []Attachment
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at, id").Find(&list).Error
	return list, err
}

func (r *repository) GetAttachment(ctx context.Context, taskID, id int64) (*Attachment, error) {
	var a Attachment
	err := r.db.WithContext(ctx).Where("task_id = ? AND id = ?", taskID, id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttachmentNotFound
	}
	return &a, err
}

func (r *repository) CreateAttachment(ctx context.Context, a *Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) DeleteAttachment(ctx context.Context, taskID, id int64) error {
	res := r.db.WithContext(ctx).Where("task_id = ? AND id = ?", taskID, id).Delete(&Attachment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}
