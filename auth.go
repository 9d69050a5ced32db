package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
)

var errInvalidToken = errors.New("invalid token")

type JWTData struct {
	// Standard claims are the standard jwt claims from the IETF standard
	// https://tools.ietf.org/html/rfc7519
	jwt.StandardClaims
	CustomClaims map[string]string `json:"custom,omitempty"`
}

func issueToken(secret string, userName string, ttl time.Duration) (string, error) {
	claims := JWTData{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
		CustomClaims: map[string]string{
			"userName": userName,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken returns the user name carried by a token signed with secret.
func parseToken(secret string, tokenString string) (string, error) {
	claims, err := jwt.ParseWithClaims(tokenString, &JWTData{}, func(token *jwt.Token) (interface{}, error) {
		if jwt.SigningMethodHS256 != token.Method {
			return nil, errors.New("invalid signing algorithm")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	data, ok := claims.Claims.(*JWTData)
	if !ok || !claims.Valid {
		return "", errInvalidToken
	}
	userName := data.CustomClaims["userName"]
	if userName == "" {
		return "", errInvalidToken
	}
	return userName, nil
}

type userRouter struct {
	users  UserStore
	hash   HashAbs
	secret string
	ttl    time.Duration
}

type credentials struct {
	User     string `json:"username"`
	Password string `json:"password"`
}

func decodeCredentials(r *http.Request) (credentials, error) {
	var c credentials
	if r.Body == nil {
		return c, errors.New("no request body")
	}
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		return c, err
	}
	if c.User == "" || c.Password == "" {
		return c, errors.New("username and password are required")
	}
	return c, nil
}

func (ur *userRouter) createUserHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "application/json")
	c, err := decodeCredentials(r)
	if err != nil {
		log.Debug().Err(err).Msg("bad register request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = ur.users.Create(&User{Username: c.User, Password: c.Password})
	if errors.Is(err, ErrUserExists) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("user", c.User).Msg("creating user")
		http.Error(w, "Register failed!", http.StatusInternalServerError)
		return
	}
	log.Info().Str("user", c.User).Msg("user registered")
	w.WriteHeader(http.StatusCreated)
}

func (ur *userRouter) login(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "application/json")
	c, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dbUser, err := ur.users.GetByUsername(c.User)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Error().Err(err).Str("user", c.User).Msg("loading user")
		}
		http.Error(w, "Login failed!", http.StatusUnauthorized)
		return
	}
	if err := ur.hash.Compare(dbUser.Password, c.Password); err != nil {
		http.Error(w, "Login failed!", http.StatusUnauthorized)
		return
	}

	tokenString, err := issueToken(ur.secret, dbUser.Username, ur.ttl)
	if err != nil {
		log.Error().Err(err).Msg("signing token")
		http.Error(w, "Login failed!", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(struct {
		Token string `json:"token"`
		Name  string `json:"name"`
	}{
		tokenString,
		dbUser.Username,
	})
	log.Info().Str("user", dbUser.Username).Msg("login")
}
