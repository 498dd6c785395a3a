package jobs

import (
	"log"

	"github.com/casafind/rental_marketplace/database"
	"github.com/casafind/rental_marketplace/services"
)

// RefreshMatchSnapshots recomputes every tenant's persisted match
// scores against the listed inventory so the matches feed stays warm
// between preference edits.
func RefreshMatchSnapshots() {
	log.Println("Running job: RefreshMatchSnapshots...")

	refreshed, err := services.RefreshSnapshots(database.DB)
	if err != nil {
		log.Printf("Error refreshing match snapshots: %v", err)
		return
	}

	if refreshed == 0 {
		log.Println("No match snapshots to refresh.")
		return
	}
	log.Printf("Refreshed %d match snapshot(s).", refreshed)
}
