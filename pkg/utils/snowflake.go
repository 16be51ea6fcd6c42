package utils

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/sirupsen/logrus"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

// InitSnowflake 初始化全局雪花节点，nodeId 取值 0-1023
func InitSnowflake(nodeId int64) error {
	n, err := snowflake.NewNode(nodeId)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// NextID 生成唯一ID，未初始化时使用节点 1
func NextID() int64 {
	nodeOnce.Do(func() {
		if node != nil {
			return
		}
		if err := InitSnowflake(1); err != nil {
			logrus.Fatalf("init snowflake node: %v", err)
		}
	})
	return node.Generate().Int64()
}
