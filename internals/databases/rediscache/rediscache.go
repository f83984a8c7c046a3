package rediscache

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client: pembungkus tipis go-redis untuk invalidasi cache clock-status.
// Sifatnya best-effort: kalau Redis tidak dikonfigurasi atau mati, semua
// operasi jadi no-op — request utama tidak boleh ikut gagal.
type Client struct {
	rdb *goredis.Client
}

// Connect membaca REDIS_ADDR; kalau kosong, kembalikan client no-op.
func Connect() *Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR kosong, invalidasi cache dinonaktifkan")
		return &Client{}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis tidak bisa dihubungi (%v), lanjut tanpa cache", err)
		return &Client{}
	}

	log.Printf("✅ Redis connected (%s)", addr)
	return &Client{rdb: rdb}
}

// InvalidateClockStatus menghapus entri cache "user:{id}:clock-status".
// Error hanya dicatat, tidak pernah dipropagasi ke caller.
func (c *Client) InvalidateClockStatus(userID string) {
	if c == nil || c.rdb == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := fmt.Sprintf("user:%s:clock-status", userID)
		if err := c.rdb.Del(ctx, key).Err(); err != nil {
			log.Printf("cache invalidate %s err: %v", key, err)
		}
	}()
}

func (c *Client) Close() {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Close()
}
