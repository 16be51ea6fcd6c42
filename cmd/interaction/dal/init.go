package dal

import (
	"VidTube.com/cmd/interaction/dal/db"
	"github.com/sirupsen/logrus"
)

// Store 全局事实表访问入口，Init 之后可用
var Store *db.FactStore

func Init() {
	db.Init()
	Store = db.NewFactStore(db.DB)
	logrus.Info("fact store initialized")
}
