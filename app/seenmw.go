package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"library_backend/db"
)

// TouchLastSeen records user activity, throttled through redis SetNX
// so the users table is not written on every request.
func TouchLastSeen(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, _, ok := CurrentUser(c)
		if !ok || uid == 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("user:lastseen:%d", uid)
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.TouchUserSeen(c, uid) // ignore errors, must not block the request
		}
		c.Next()
	}
}
