package db

import (
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormopentracing "gorm.io/plugin/opentracing"
)

var DB *gorm.DB

// Init init DB
func Init() {
	var err error
	DB, err = Open(mysql.Open(utils.GetMysqlDsn()))
	if err != nil {
		panic(err)
	}
	if err = DB.Use(gormopentracing.New()); err != nil {
		panic(err)
	}
	if err = Migrate(DB); err != nil {
		panic(err)
	}
}

// Open 唯一索引冲突需要被翻译成 gorm.ErrDuplicatedKey
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector,
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			TranslateError:         true,
		},
	)
}

// Migrate 建表以及唯一索引和 check 约束
func Migrate(db *gorm.DB) error {
	logrus.Info("Starting fact store migration...")
	if err := db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
	); err != nil {
		logrus.Errorf("Failed to migrate fact store: %v", err)
		return err
	}
	logrus.Info("Fact store migration completed successfully")
	return nil
}
