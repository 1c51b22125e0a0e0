package common

import (
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	snowflakeNode *snowflake.Node
	nodeOnce      sync.Once
)

// UUIDint64 returns a cluster-unique int64 identifier.
func UUIDint64() int64 {
	nodeOnce.Do(func() {
		var err error
		snowflakeNode, err = snowflake.NewNode(int64(os.Getpid() % 1024))
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode.Generate().Int64()
}
