// crear_admin crea el primer usuario administrador.
//
// Uso: go run ./cmd/crear_admin -username admin -password <clave> [-nombre "Administrador"]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/almacen-kardex/internal/application/dto"
	"github.com/jhoicas/almacen-kardex/internal/application/usecase"
	"github.com/jhoicas/almacen-kardex/internal/domain"
	"github.com/jhoicas/almacen-kardex/internal/domain/entity"
	"github.com/jhoicas/almacen-kardex/internal/infrastructure/storage"
	"github.com/jhoicas/almacen-kardex/pkg/config"
	"github.com/jhoicas/almacen-kardex/pkg/logger"
)

func main() {
	username := flag.String("username", "admin", "usuario")
	password := flag.String("password", "", fmt.Sprintf("contraseña (mínimo %d caracteres)", usecase.MinPasswordLength))
	fullName := flag.String("nombre", "Administrador", "nombre completo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer repos.Close()

	user, err := usecase.NewUserUseCase(repos.Users).Create(ctx, dto.CreateUserRequest{
		Username: *username,
		FullName: *fullName,
		Password: *password,
		Role:     string(entity.RoleAdmin),
	})
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		log.Warn().Str("username", *username).Msg("el usuario ya existe")
		return
	case errors.Is(err, domain.ErrInvalidInput):
		log.Fatal().Msgf("datos inválidos: username de 3+ caracteres y password de %d+", usecase.MinPasswordLength)
	case err != nil:
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("id", user.ID).Str("username", user.Username).Msg("administrador creado")
}
