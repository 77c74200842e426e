// Command simulate runs one werewolf session in the terminal: a single
// human seat against computer villagers, no server and no sockets.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mmuslimabdulj/goat-wolf/internal/domain"
	"github.com/mmuslimabdulj/goat-wolf/internal/game"
	"github.com/mmuslimabdulj/goat-wolf/internal/logger"
	"github.com/mmuslimabdulj/goat-wolf/internal/usecase"
)

const connID = "console"

// consoleNotifier renders engine messages to stdout. The engine calls it
// under its own lock, so it only prints and records, never calls back.
type consoleNotifier struct {
	mu      sync.Mutex
	pending domain.ActionType
	done    chan struct{}
	doneFn  sync.Once
}

func newConsoleNotifier() *consoleNotifier {
	return &consoleNotifier{done: make(chan struct{})}
}

func (c *consoleNotifier) finish() {
	c.doneFn.Do(func() { close(c.done) })
}

// pendingAction returns the action the engine last asked the player for
func (c *consoleNotifier) pendingAction() domain.ActionType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *consoleNotifier) clearPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = ""
}

func (c *consoleNotifier) Broadcast(msg domain.Message) {
	switch msg.Type {
	case domain.MessageTypeSystem:
		var p domain.SystemPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Println("  * " + p.Text)
		}
	case domain.MessageTypeChat:
		var p domain.ChatLinePayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Printf("  %s: %s\n", msg.FromName, p.Text)
		}
	case domain.MessageTypePhaseChange:
		var p domain.PhaseChangePayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Printf("\n==== %s ====\n", p.Label)
		}
	case domain.MessageTypeGameOver:
		var p domain.GameOverPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Printf("\n>>> %s\n", p.Outcome)
		}
		c.finish()
	case domain.MessageTypeRoomClosed:
		c.finish()
	}
}

func (c *consoleNotifier) NotifyConn(id string, msg domain.Message) {
	if id != connID {
		return
	}
	switch msg.Type {
	case domain.MessageTypeYourRole:
		var p domain.RolePayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Printf("\nPeranmu: %s\n", p.Role)
		}
	case domain.MessageTypeWerewolfBuddies:
		var p domain.BuddiesPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Printf("Kawananmu: %s\n", strings.Join(p.Names, ", "))
		}
	case domain.MessageTypeActionRequest:
		var p domain.ActionRequestPayload
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		c.mu.Lock()
		c.pending = p.Kind
		c.mu.Unlock()

		fmt.Printf("\n%s. Pilihan target:\n", actionPrompt(p.Kind))
		for _, t := range p.Targets {
			fmt.Printf("  [%d] %s\n", t.ID, t.Name)
		}
		fmt.Print("Ketik nomor target: ")
	case domain.MessageTypeSystem:
		var p domain.SystemPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Println("  (rahasia) " + p.Text)
		}
	case domain.MessageTypeActionError:
		var p domain.ActionErrorPayload
		if json.Unmarshal(msg.Payload, &p) == nil {
			fmt.Println("  ! " + p.Reason)
		}
	}
}

func (c *consoleNotifier) RoomClosed(string) {
	c.finish()
}

func actionPrompt(kind domain.ActionType) string {
	switch kind {
	case domain.ActionVote:
		return "Saatnya voting, pilih siapa yang digantung"
	case domain.ActionWerewolfKill:
		return "Pilih mangsa malam ini"
	case domain.ActionDoctorProtect:
		return "Pilih siapa yang kamu lindungi"
	case domain.ActionSeerReveal:
		return "Pilih siapa yang kamu lihat perannya"
	}
	return "Pilih target"
}

func prompt(reader *bufio.Reader, text string) string {
	fmt.Print(text)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func main() {
	logger.Setup("silent")
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Werewolf: mode lokal ===")
	name := prompt(reader, "Siapa namamu? ")
	if name == "" {
		name = "Pemain"
	}

	seats := 0
	for seats < domain.MinPlayers {
		raw := prompt(reader, "Jumlah pemain total (minimal 3)? ")
		if n, err := strconv.Atoi(raw); err == nil && n >= domain.MinPlayers {
			seats = n
		}
	}

	notifier := newConsoleNotifier()
	room := game.NewRoom("LOCAL", notifier, game.DefaultConfig(), nil)
	room.ConnOpened(connID)

	myID, err := room.Register(connID, name, domain.KindHuman)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gagal mendaftar:", err)
		os.Exit(1)
	}

	namer := usecase.NewSeatNamer()
	for i := 1; i < seats; i++ {
		if _, err := room.AddSeat(connID, namer.Generate(), domain.KindComputer); err != nil {
			fmt.Fprintln(os.Stderr, "gagal menambah pemain komputer:", err)
			os.Exit(1)
		}
	}

	if err := room.Start(connID); err != nil {
		fmt.Fprintln(os.Stderr, "gagal memulai:", err)
		os.Exit(1)
	}

	// Reader loop: numbers answer the pending action request, anything
	// else goes to the village chat.
	inputs := make(chan string)
	go func() {
		defer close(inputs)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimSpace(line)
			if line != "" {
				inputs <- line
			}
		}
	}()

	for {
		select {
		case <-notifier.done:
			fmt.Println("\nPermainan selesai. Sampai jumpa!")
			return

		case line, ok := <-inputs:
			if !ok {
				room.Restart(connID)
				return
			}

			if targetID, err := strconv.Atoi(line); err == nil {
				kind := notifier.pendingAction()
				if kind == "" {
					fmt.Println("  ! tidak ada aksi yang ditunggu")
					continue
				}
				act := domain.Action{Type: kind, ActorID: myID, TargetID: targetID}
				if err := room.SubmitAction(connID, act); err != nil {
					fmt.Println("  !", err)
					continue
				}
				notifier.clearPending()
				continue
			}

			if err := room.Chat(connID, myID, line); err != nil {
				fmt.Println("  !", err)
			}
		}
	}
}
