package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hospital-chat/internal/chat"
	"hospital-chat/internal/config"
	"hospital-chat/internal/domain"
	"hospital-chat/internal/notify"
	"hospital-chat/internal/profile"
	"hospital-chat/internal/query"
	"hospital-chat/internal/repository"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	var profileRepo repository.ProfileRepository = repository.NewMemoryProfileRepository()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		profileRepo = repository.NewRedisProfileRepository(redisClient)
	}

	store := profile.NewStore(logger, profileRepo)
	store.Load(ctx)

	client := query.NewHTTPClient(
		cfg.QueryBaseURL,
		time.Duration(cfg.QueryTimeoutSeconds)*time.Second,
		logger,
	)

	alerts := notify.NewBuffer()
	session := chat.NewSession(client, store, alerts, logger)

	fmt.Println("===== Hospital Chat =====")
	fmt.Println("Comandos: /name <nombre>, /accent <0..n>, /profile, /reset, /quit")
	printNewMessages(session.Messages(), 0)
	seen := len(session.Messages())

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "/quit":
			session.Close()
			return
		case line == "/profile":
			p := store.Profile()
			fmt.Printf("Nombre: %s\nAvatar: %s\n", p.Name, p.AvatarURL())
			continue
		case line == "/reset":
			// Descarta la conversacion actual y abre una nueva con su saludo.
			session.Close()
			session = chat.NewSession(client, store, alerts, logger)
			printNewMessages(session.Messages(), 0)
			seen = len(session.Messages())
			continue
		case strings.HasPrefix(line, "/name "):
			name := strings.TrimPrefix(line, "/name ")
			if _, err := store.Update(ctx, profile.UpdateInput{Name: &name}); err != nil {
				fmt.Println("Aviso: el cambio puede no sobrevivir un reinicio:", err)
			}
			continue
		case strings.HasPrefix(line, "/accent "):
			idx, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/accent ")))
			if err != nil {
				fmt.Printf("Uso: /accent <0..%d>\n", domain.PaletteSize()-1)
				continue
			}
			accent, err := domain.AccentAt(idx)
			if err != nil {
				fmt.Printf("Acento invalido, hay %d disponibles\n", domain.PaletteSize())
				continue
			}
			if _, err := store.Update(ctx, profile.UpdateInput{Accent: &accent}); err != nil {
				fmt.Println("Aviso: el cambio puede no sobrevivir un reinicio:", err)
			}
			continue
		}

		if _, err := session.Submit(line); err != nil {
			if errors.Is(err, chat.ErrEmptyMessage) {
				continue
			}
			fmt.Println("Error:", err)
			continue
		}

		session.Wait()

		msgs := session.Messages()
		printNewMessages(msgs, seen)
		seen = len(msgs)

		for _, alert := range alerts.Drain() {
			fmt.Printf("[aviso] fallo de entrega (%s): %s\n", alert.Kind, alert.Message)
		}
	}
}

func printNewMessages(msgs []domain.Message, from int) {
	for _, m := range msgs[from:] {
		label := m.Author.Name
		if m.Status == domain.StatusFailed {
			label += " (no entregado)"
		}
		fmt.Printf("%s: %s\n", label, m.Text)
	}
}
