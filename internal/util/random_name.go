package util

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Lucky", "Hot", "Cold", "Silver", "Golden", "Lonely", "Crowded", "Quiet", "Smoky", "Velvet", "Neon",
	"Red", "Blue", "Green", "Orange", "Purple", "Midnight", "Grand", "Ultimate", "Prime", "High", "Low",
	"Downtown", "Uptown", "Riverboat", "Desert",
}

var nouns = []string{
	"Shoe", "Ace", "Deuce", "Dealer", "Felt", "Chip", "Stack", "Table", "Pit", "Count", "Split",
	"Double", "Seven", "Jack", "Queen", "King", "Lounge", "Room", "Parlor",
}

var (
	random     = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
	randomLock sync.Mutex
)

// GetRandomName returns a random table name by combining an adjective with a noun
func GetRandomName() string {
	randomLock.Lock()
	adjectivesIndex := random.Intn(len(adjectives))
	nounsIndex := random.Intn(len(nouns))
	randomLock.Unlock()

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], nouns[nounsIndex])
}
