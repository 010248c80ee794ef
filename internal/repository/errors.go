// Package repository contains the data access layer. Sentinel errors let
// handlers map failure scenarios onto HTTP status codes without inspecting
// driver errors.
package repository

import "errors"

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// ErrUserNotFound indicates that a user was not located in the DB.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when creating a user with a taken email.
var ErrEmailExists = errors.New("email already exists")
