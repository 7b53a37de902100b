package backup

import (
	"context"
	"log"
	"time"
)

// Run takes a backup every interval and keeps the newest keep files, until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration, keep int) {
	if interval <= 0 {
		log.Println("Otomatik yedekleme kapalı")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.Create(ctx); err != nil {
				log.Printf("Otomatik yedek alınamadı: %v", err)
				continue
			}
			if n, err := m.Prune(keep); err != nil {
				log.Printf("Eski yedekler temizlenemedi: %v", err)
			} else if n > 0 {
				log.Printf("%d eski yedek silindi", n)
			}
		}
	}
}
