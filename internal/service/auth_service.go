package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tunik/internal/acl"
	"tunik/internal/config"
	"tunik/internal/dto"
	"tunik/internal/model"
	"tunik/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, cedula string) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	acls acl.Store
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, acls acl.Store, cfg *config.Config) AuthService {
	return &authService{repo: repo, acls: acls, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Usuario no encontrado")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Contrasena), []byte(req.Contrasena)); err != nil {
		return nil, Unauthorized("Contraseña incorrecta")
	}
	return s.session(user)
}

// Register creates a customer account and logs it in. The role is always
// Cliente whatever the caller sends.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	cedula, err := required("cedula", req.Cedula)
	if err != nil {
		return nil, err
	}
	nombre, err := required("nombre", req.Nombre)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.repo.EmailInUse(ctx, email, cedula)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, Conflict("El email ya está registrado")
	}
	hash, err := hashPassword(req.Contrasena)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Cedula:     cedula,
		Nombre:     nombre,
		Telefono:   strings.TrimSpace(req.Telefono),
		Email:      email,
		Contrasena: hash,
		RolID:      model.RolClienteID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, translateWrite(err, "Ya existe un usuario con esa cédula")
	}
	if fresh, err := s.repo.FindByID(ctx, cedula); err == nil {
		user = fresh
	}
	return s.session(user)
}

// Me returns the session of an already authenticated user with a fresh
// token and the current ACL of their role.
func (s *authService) Me(ctx context.Context, cedula string) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByID(ctx, cedula)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Unauthorized("Sesión inválida")
	}
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

func (s *authService) session(user *model.Usuario) (*dto.LoginResponse, error) {
	token, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	a := s.acls.Get(user.RolID)
	return &dto.LoginResponse{
		Ok:      true,
		Usuario: *user,
		Token:   token,
		ACL:     dto.ACLResponse{Permisos: a.Permisos, Privilegios: a.Privilegios},
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"cedula":  user.Cedula,
		"email":   user.Email,
		"idroles": user.RolID,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
