package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/shidoukh/shidoukh/pkg/errors"
)

// User-facing messages. The dashboard is French-only, so every message a
// handler may relay to the browser is defined here in French.
var (
	ErrRequiredFields     = apperrors.New("REQUIRED_FIELDS", "Tous les champs requis doivent être remplis", http.StatusBadRequest)
	ErrInvalidEmail       = apperrors.New("INVALID_EMAIL", "Adresse email invalide", http.StatusBadRequest)
	ErrWeakPassword       = apperrors.New("WEAK_PASSWORD", "Le mot de passe doit contenir au moins 8 caractères", http.StatusBadRequest)
	ErrPasswordMismatch   = apperrors.New("PASSWORD_MISMATCH", "Les mots de passe ne correspondent pas", http.StatusBadRequest)
	ErrEmailExists        = apperrors.New("EMAIL_EXISTS", "Un compte existe déjà avec cette adresse email", http.StatusBadRequest)
	ErrInvalidCredentials = apperrors.New("INVALID_CREDENTIALS", "Email ou mot de passe incorrect", http.StatusUnauthorized)
	ErrNotConfirmed       = apperrors.New("EMAIL_NOT_CONFIRMED", "Veuillez confirmer votre adresse email avant de vous connecter", http.StatusUnauthorized)
	ErrInvalidToken       = apperrors.New("INVALID_TOKEN", "Lien invalide ou expiré", http.StatusBadRequest)
	ErrEmailSend          = apperrors.New("EMAIL_SEND_FAILED", "Erreur lors de l'envoi de l'email", http.StatusInternalServerError)
	ErrGeneric            = apperrors.New("INTERNAL_ERROR", "Une erreur est survenue. Veuillez réessayer.", http.StatusInternalServerError)

	ErrDifferentPersons = apperrors.New("SAME_PERSON", "Les deux personnes doivent être différentes", http.StatusBadRequest)

	ErrPersonneCreate = apperrors.New("PERSONNE_CREATE_FAILED", "Erreur lors de la création de la personne", http.StatusInternalServerError)
	ErrPersonneUpdate = apperrors.New("PERSONNE_UPDATE_FAILED", "Erreur lors de la mise à jour de la personne", http.StatusInternalServerError)
	ErrPersonneDelete = apperrors.New("PERSONNE_DELETE_FAILED", "Erreur lors de la suppression de la personne", http.StatusInternalServerError)

	ErrMeetingCreate = apperrors.New("MEETING_CREATE_FAILED", "Erreur lors de la création du meeting", http.StatusInternalServerError)
	ErrMeetingUpdate = apperrors.New("MEETING_UPDATE_FAILED", "Erreur lors de la mise à jour du meeting", http.StatusInternalServerError)
	ErrMeetingDelete = apperrors.New("MEETING_DELETE_FAILED", "Erreur lors de la suppression du meeting", http.StatusInternalServerError)
)

// Success messages returned alongside data.
const (
	MsgAccountCreated = "Compte créé ! Vérifiez votre email pour confirmer votre adresse."
	MsgLoginSuccess   = "Connexion réussie"
	MsgResetEmailSent = "Si un compte existe avec cette adresse, un email de réinitialisation a été envoyé."
	MsgPasswordReset  = "Mot de passe réinitialisé avec succès"
	MsgEmailConfirmed = "Email confirmé avec succès"
)

// isUniqueConstraintError reports whether err is a duplicate-key violation
// from any of the supported drivers.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}

	// The sqlite driver does not export a typed error through gorm.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "constraint failed")
}
