package jobs

import (
	"log"
	"time"

	"fanclub-backend/internal/services"
)

// GameProgressJob periodically refreshes the display-only progress field on
// scheduled games. It never touches betting sessions; start/stop/settle are
// operator actions only.
type GameProgressJob struct {
	gameService *services.GameService
	interval    time.Duration
	stopChan    chan struct{}
}

// NewGameProgressJob creates a new game progress job
func NewGameProgressJob(gameService *services.GameService, interval time.Duration) *GameProgressJob {
	return &GameProgressJob{
		gameService: gameService,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the refresh loop
func (j *GameProgressJob) Start() {
	log.Printf("[GameProgress] Starting game progress job (interval: %v)", j.interval)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := j.gameService.RefreshProgress(time.Now()); err != nil {
				log.Printf("[GameProgress] Error refreshing game progress: %v", err)
			}
		case <-j.stopChan:
			log.Println("[GameProgress] Stopping game progress job")
			return
		}
	}
}

// Stop stops the refresh loop
func (j *GameProgressJob) Stop() {
	close(j.stopChan)
}
