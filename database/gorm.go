package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/saikumarreddyappidi/Education/config"
	"github.com/saikumarreddyappidi/Education/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	// Build DSN (Data Source Name)
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	// Open GORM connection. TranslateError lets unique-constraint violations
	// surface as gorm.ErrDuplicatedKey so duplicate registration numbers and
	// teacher codes are rejected atomically at insert time.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")

	return &GORMStore{db: db}, nil
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		&model.User{},
		&model.Note{},
		&model.File{},
		&model.Whiteboard{},
		&model.Question{},
		&model.Answer{},
	)
	if err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	// Teacher codes are unique among staff only. Students mirror the code of
	// the first teacher they connect to, so a full-column unique index would
	// reject every linked student row.
	err = s.db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_staff_teacher_code
		 ON users (teacher_code) WHERE role = 'staff' AND deleted_at IS NULL`,
	).Error
	if err != nil {
		log.Println("Error creating staff teacher-code index:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM PostgreSQL connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for advanced use
func (s *GORMStore) GetDB() interface{} {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// translateErr maps GORM errors onto the storage error taxonomy.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// ---- Users ----

func (s *GORMStore) CreateUser(ctx context.Context, user *model.User) error {
	return translateErr(s.db.WithContext(ctx).Create(user).Error)
}

func (s *GORMStore) SaveUser(ctx context.Context, user *model.User) error {
	return translateErr(s.db.WithContext(ctx).Save(user).Error)
}

func (s *GORMStore) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *GORMStore) GetUserByRegistrationNumber(ctx context.Context, regNo string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("registration_number = ?", regNo).First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *GORMStore) GetStaffByTeacherCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("teacher_code = ? AND role = ?", code, model.RoleStaff).
		First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *GORMStore) GetStaffByRegistrationNumber(ctx context.Context, regNo string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).
		Where("registration_number = ? AND role = ?", regNo, model.RoleStaff).
		First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *GORMStore) TeacherCodeInUse(ctx context.Context, code string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("teacher_code = ? AND role = ?", code, model.RoleStaff).
		Count(&count).Error
	return count > 0, err
}

// ---- Notes ----

func (s *GORMStore) CreateNote(ctx context.Context, note *model.Note) error {
	return translateErr(s.db.WithContext(ctx).Create(note).Error)
}

func (s *GORMStore) SaveNote(ctx context.Context, note *model.Note) error {
	return translateErr(s.db.WithContext(ctx).Save(note).Error)
}

func (s *GORMStore) DeleteNote(ctx context.Context, id uint) error {
	return translateErr(s.db.WithContext(ctx).Delete(&model.Note{}, id).Error)
}

func (s *GORMStore) GetNoteByID(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := s.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &note, nil
}

func (s *GORMStore) ListNotes(ctx context.Context, filter ContentFilter) ([]model.Note, error) {
	notes := []model.Note{}
	err := s.contentQuery(ctx, &model.Note{}, "author_id", filter).Find(&notes).Error
	return notes, err
}

// ---- Files ----

func (s *GORMStore) CreateFile(ctx context.Context, file *model.File) error {
	return translateErr(s.db.WithContext(ctx).Create(file).Error)
}

func (s *GORMStore) SaveFile(ctx context.Context, file *model.File) error {
	return translateErr(s.db.WithContext(ctx).Save(file).Error)
}

func (s *GORMStore) DeleteFile(ctx context.Context, id uint) error {
	return translateErr(s.db.WithContext(ctx).Delete(&model.File{}, id).Error)
}

func (s *GORMStore) GetFileByID(ctx context.Context, id uint) (*model.File, error) {
	var file model.File
	if err := s.db.WithContext(ctx).First(&file, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &file, nil
}

func (s *GORMStore) ListFiles(ctx context.Context, filter ContentFilter) ([]model.File, error) {
	files := []model.File{}
	err := s.contentQuery(ctx, &model.File{}, "uploaded_by_id", filter).Find(&files).Error
	return files, err
}

func (s *GORMStore) IncrementFileDownloads(ctx context.Context, id uint) error {
	return translateErr(s.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1)).
		Error)
}

// ---- Whiteboards ----

func (s *GORMStore) CreateWhiteboard(ctx context.Context, wb *model.Whiteboard) error {
	return translateErr(s.db.WithContext(ctx).Create(wb).Error)
}

func (s *GORMStore) SaveWhiteboard(ctx context.Context, wb *model.Whiteboard) error {
	return translateErr(s.db.WithContext(ctx).Save(wb).Error)
}

func (s *GORMStore) DeleteWhiteboard(ctx context.Context, id uint) error {
	return translateErr(s.db.WithContext(ctx).Delete(&model.Whiteboard{}, id).Error)
}

func (s *GORMStore) GetWhiteboardByID(ctx context.Context, id uint) (*model.Whiteboard, error) {
	var wb model.Whiteboard
	if err := s.db.WithContext(ctx).First(&wb, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &wb, nil
}

func (s *GORMStore) ListWhiteboards(ctx context.Context, filter ContentFilter) ([]model.Whiteboard, error) {
	boards := []model.Whiteboard{}
	err := s.contentQuery(ctx, &model.Whiteboard{}, "author_id", filter).Find(&boards).Error
	return boards, err
}

// contentQuery builds the visibility query for one content collection.
// ownerColumn differs between collections (author_id vs uploaded_by_id).
func (s *GORMStore) contentQuery(ctx context.Context, mdl interface{}, ownerColumn string, filter ContentFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(mdl)
	switch {
	case filter.SharedOnly:
		q = q.Where(ownerColumn+" = ? AND is_shared = ?", filter.AuthorID, true)
	case len(filter.SharedCodes) > 0:
		q = q.Where(ownerColumn+" = ? OR (is_shared = ? AND teacher_code IN ?)",
			filter.AuthorID, true, filter.SharedCodes)
	default:
		q = q.Where(ownerColumn+" = ?", filter.AuthorID)
	}
	return q.Order("updated_at DESC")
}

// ---- Forum ----

func (s *GORMStore) CreateQuestion(ctx context.Context, q *model.Question) error {
	return translateErr(s.db.WithContext(ctx).Create(q).Error)
}

func (s *GORMStore) SaveQuestion(ctx context.Context, q *model.Question) error {
	return translateErr(s.db.WithContext(ctx).Save(q).Error)
}

func (s *GORMStore) GetQuestionByID(ctx context.Context, id uint) (*model.Question, error) {
	var question model.Question
	err := s.questionPreloads(ctx).First(&question, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &question, nil
}

func (s *GORMStore) ListQuestions(ctx context.Context) ([]model.Question, error) {
	questions := []model.Question{}
	err := s.questionPreloads(ctx).Order("created_at DESC").Find(&questions).Error
	return questions, err
}

func (s *GORMStore) AddAnswer(ctx context.Context, answer *model.Answer) error {
	return translateErr(s.db.WithContext(ctx).Create(answer).Error)
}

func (s *GORMStore) questionPreloads(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Author").
		Preload("AssignedTeacher").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC")
		}).
		Preload("Answers.Author")
}
