package usecase

import (
	"fmt"
	"math/rand"
	"sync"
)

// Villager archetypes for computer seat names
var villagers = []string{
	"Petani", "Nelayan", "Pemburu", "Peternak", "Pedagang", "Penenun",
	"Penggembala", "Tabib", "Penebang", "Pengrajin", "Kusir", "Penjaga",
	"Penambang", "Peramal", "Pelukis", "Pemahat", "Perajin", "Penyadap",
	"Pandai Besi", "Juru Masak", "Juru Tulis", "Tukang Kayu", "Tukang Cukur",
	"Pembuat Roti", "Penjahit", "Pemanah", "Penabuh", "Pencari Kayu",
}

// Traits attached to the archetype so two computer farmers never read alike
var traits = []string{
	"Pendiam", "Cerewet", "Pemberani", "Penakut", "Misterius", "Ramah",
	"Pelupa", "Cerdik", "Licik", "Jujur", "Pemarah", "Sabar", "Usil",
	"Waspada", "Ngantuk", "Rajin", "Malas", "Bijak", "Culun", "Garang",
	"Curiga", "Santuy", "Galak", "Kalem", "Sotoy", "Gesit", "Lugu",
}

// SeatNamer generates distinct Indonesian villager names for the computer
// seats a host adds to a room
type SeatNamer struct {
	mu       sync.RWMutex
	existing map[string]bool
}

// NewSeatNamer creates a SeatNamer
func NewSeatNamer() *SeatNamer {
	return &SeatNamer{
		existing: make(map[string]bool),
	}
}

// Generate returns a villager name not currently in use
func (sn *SeatNamer) Generate() string {
	sn.mu.Lock()
	defer sn.mu.Unlock()

	var name string
	maxAttempts := 100

	for i := 0; i < maxAttempts; i++ {
		who := villagers[rand.Intn(len(villagers))]
		trait := traits[rand.Intn(len(traits))]
		name = fmt.Sprintf("%s %s", who, trait)

		if !sn.existing[name] {
			break
		}

		// Add suffix if still duplicate after max attempts
		if i == maxAttempts-1 {
			name = fmt.Sprintf("%s %d", name, rand.Intn(999))
		}
	}

	sn.existing[name] = true
	return name
}

// Release returns a name to the pool
func (sn *SeatNamer) Release(name string) {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	delete(sn.existing, name)
}

// ActiveCount returns the number of names in use
func (sn *SeatNamer) ActiveCount() int {
	sn.mu.RLock()
	defer sn.mu.RUnlock()
	return len(sn.existing)
}
