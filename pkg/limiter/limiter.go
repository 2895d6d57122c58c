// Package limiter 基于令牌桶的接口限流
package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face limiter interface
// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule single bucket rule
// BucketRule 单个令牌桶规则
type BucketRule struct {
	Key          string        // 匹配的路由前缀 key
	FillInterval time.Duration // 放置令牌的间隔
	Capacity     int64         // 桶容量
	Quantum      int64         // 每次放置的令牌数
}

// Limiter 持有所有已注册的令牌桶
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// MethodLimiter 根据请求路径前缀限流
type MethodLimiter struct {
	*Limiter
}

func NewMethodLimiter() Face {
	return MethodLimiter{
		Limiter: &Limiter{limiterBuckets: make(map[string]*ratelimit.Bucket)},
	}
}

// Key 取请求路径（不含 query）作为限流 key
func (l MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	index := strings.Index(uri, "?")
	if index == -1 {
		return uri
	}
	return uri[:index]
}

func (l MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	// 前缀匹配，命中最先注册的规则
	for ruleKey, bucket := range l.limiterBuckets {
		if strings.HasPrefix(key, ruleKey) {
			return bucket, true
		}
	}
	return nil, false
}

func (l MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.limiterBuckets[rule.Key]; !ok {
			l.limiterBuckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
