package identity

import (
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const (
	demoUsername  = "Demo"
	demoEmail     = "demo@demo.com"
	demoPassword  = "demodemo"
	demoFirstName = "Demo"
	demoLastName  = "Demo"
)

// handleProvisionDemo rebuilds the demo account from scratch: any previous
// demo user is removed along with its courses and orphaned videos, then a
// fresh one is created, seeded with the fixture course, and logged in. The
// result is fully deterministic.
func (s *Server) handleProvisionDemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	old, err := s.repo.FindUserByUsernameAndEmail(ctx, demoUsername, demoEmail)
	if err == nil {
		if err := s.courses.PurgeOwner(ctx, old.ID); err != nil {
			log.Printf("identity: demo purge courses: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := s.repo.DeleteUser(ctx, old.ID); err != nil {
			log.Printf("identity: demo purge user: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	} else if !errors.Is(err, ErrUserNotFound) {
		log.Printf("identity: demo lookup: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("identity: demo hash: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := s.repo.CreateUser(ctx, NewUser{
		Username:     demoUsername,
		Email:        demoEmail,
		PasswordHash: string(hash),
		FirstName:    demoFirstName,
		LastName:     demoLastName,
	})
	if err != nil {
		log.Printf("identity: demo create: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := s.courses.SeedDemoCourse(ctx, user.ID); err != nil {
		log.Printf("identity: demo seed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		log.Printf("identity: demo session: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{Token: token, User: user})
}
