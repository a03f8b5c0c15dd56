package db

import (
	"context"
	"errors"
	"time"

	"github.com/prasetyowira/tyrelabel/constant"
	"github.com/prasetyowira/tyrelabel/domain/label"
	appLogger "github.com/prasetyowira/tyrelabel/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
)

// LabelRepository implements label.Repository on top of SQLite
type LabelRepository struct {
	db *gorm.DB
}

// LabelModel is the GORM model for a registered label definition
type LabelModel struct {
	ID             uint   `gorm:"primaryKey"`
	EPRELID        int    `gorm:"column:eprel_id;uniqueIndex;not null"`
	Supplier       string `gorm:"not null"`
	TypeIdentifier string `gorm:"not null"`
	Size           string `gorm:"not null"`
	TyreClass      string `gorm:"not null"`
	FuelEfficiency string `gorm:"size:1;not null"`
	WetGrip        string `gorm:"size:1;not null"`
	RollNoise      int
	NoiseLevel     string `gorm:"size:1;not null"`
	SnowGrip       bool
	IceGrip        bool
	EPRELLink      string `gorm:"column:eprel_link"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func toModel(f label.Fields) LabelModel {
	return LabelModel{
		EPRELID:        f.EPRELID,
		Supplier:       f.Supplier,
		TypeIdentifier: f.TypeIdentifier,
		Size:           f.Size,
		TyreClass:      f.TyreClass,
		FuelEfficiency: f.FuelEfficiency,
		WetGrip:        f.WetGrip,
		RollNoise:      f.RollNoise,
		NoiseLevel:     f.NoiseLevel,
		SnowGrip:       f.SnowGrip,
		IceGrip:        f.IceGrip,
		EPRELLink:      f.EPRELLink,
	}
}

func (m LabelModel) fields() label.Fields {
	return label.Fields{
		Supplier:       m.Supplier,
		TypeIdentifier: m.TypeIdentifier,
		Size:           m.Size,
		TyreClass:      m.TyreClass,
		FuelEfficiency: m.FuelEfficiency,
		WetGrip:        m.WetGrip,
		RollNoise:      m.RollNoise,
		NoiseLevel:     m.NoiseLevel,
		SnowGrip:       m.SnowGrip,
		IceGrip:        m.IceGrip,
		EPRELID:        m.EPRELID,
		EPRELLink:      m.EPRELLink,
	}
}

// GormLogger implements GORM's logger.Interface
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations. Record-not-found is an expected outcome of a
// lookup and is logged at debug level.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	// Only successful queries reach here, logged at debug level
	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewLabelRepository opens (or creates) the SQLite database at dbPath and
// migrates the label schema
func NewLabelRepository(dbPath string) (*LabelRepository, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	// Open the database with the zap-backed GORM logger
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: &GormLogger{},
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&LabelModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &LabelRepository{db: db}, nil
}

// Upsert inserts a definition or replaces the one stored under the same EPREL id
func (r *LabelRepository) Upsert(ctx context.Context, fields label.Fields) error {
	model := toModel(fields)

	// Replace every column except the id on conflict
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "eprel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"supplier", "type_identifier", "size", "tyre_class",
			"fuel_efficiency", "wet_grip", "roll_noise", "noise_level",
			"snow_grip", "ice_grip", "eprel_link", "updated_at",
		}),
	}).Create(&model)

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to upsert label definition", appLogger.LoggerInfo{
			ContextFunction: constant.CtxUpsert,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBUpsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataEPRELID: fields.EPRELID,
			},
		})
		return result.Error
	}

	appLogger.CtxDebug(ctx, "Label definition stored", appLogger.LoggerInfo{
		ContextFunction: constant.CtxUpsert,
		Data: map[string]interface{}{
			constant.DataEPRELID:      fields.EPRELID,
			constant.DataRowsAffected: result.RowsAffected,
		},
	})

	return nil
}

// FindByEPRELID retrieves the definition stored for eprelID. It returns
// label.ErrNotFound when there is none.
func (r *LabelRepository) FindByEPRELID(ctx context.Context, eprelID int) (*label.Fields, error) {
	var model LabelModel

	err := r.db.WithContext(ctx).Where("eprel_id = ?", eprelID).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		appLogger.CtxInfo(ctx, "Label definition not found", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByEPRELID,
			Data: map[string]interface{}{
				constant.DataEPRELID: eprelID,
			},
		})
		return nil, label.ErrNotFound
	}
	if err != nil {
		appLogger.CtxError(ctx, "Database error while looking up label", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByEPRELID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataEPRELID: eprelID,
			},
		})
		return nil, err
	}

	// Convert model to domain fields
	fields := model.fields()
	return &fields, nil
}

// Close closes the database connection
func (r *LabelRepository) Close() error {
	ctx := context.Background()
	sqlDB, err := r.db.DB()
	if err != nil {
		appLogger.CtxError(ctx, "Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.CtxInfo(ctx, "Closing database connection", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}
