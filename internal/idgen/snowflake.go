package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	nodeMap sync.Map // map[string]*snowflake.Node
)

// InitNode 初始化指定名称的 Snowflake 节点
func InitNode(name string, nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("InitNode failed: %w", err)
	}
	nodeMap.Store(name, n)
	return nil
}

// NewFrom returns the next id of the named node.
func NewFrom(name string) (snowflake.ID, error) {
	val, ok := nodeMap.Load(name)
	if !ok {
		return 0, fmt.Errorf("snowflake node not initialized: %s", name)
	}
	return val.(*snowflake.Node).Generate(), nil
}

// TraceID 默认节点生成器（"default"）, base58 encoded for headers and logs.
func TraceID() string {
	id, err := NewFrom("default")
	if err != nil {
		return ""
	}
	return id.Base58()
}
