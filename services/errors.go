package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrTeamNameRequired      = errors.New("team needs at least one player with a non-empty IGN")
	ErrTeamRosterTooLarge    = errors.New("team roster exceeds the slot limit")
	ErrMatchNumberInvalid    = errors.New("match number must be a positive integer")
	ErrRegistrationNotOpen   = errors.New("tournament registration is not open")
	ErrTournamentFull        = errors.New("tournament team limit reached")
	ErrWinnerAlreadyDecided  = errors.New("tournament winner has already been declared")
	ErrTournamentNotFinished = errors.New("winner can only be declared for an active or completed tournament")
	ErrPollOptionInvalid     = errors.New("poll option index is out of range")
	ErrPollNotOpen           = errors.New("poll is not open for voting")
	ErrPollNeedsTwoOptions   = errors.New("poll needs at least two options")
	ErrDepositNotPositive    = errors.New("deposit amount must be positive")

	// Ошибки конфликтов
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrUserNicknameConflict   = errors.New("nickname is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use for this tournament")
	ErrTournamentNameConflict = errors.New("tournament name already exists in this season")
	ErrSeasonNameConflict     = errors.New("season name already exists")
	ErrAlreadyVoted           = errors.New("user has already voted in this poll")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrInsufficientFunds      = errors.New("insufficient UC balance")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrSeasonNotFound     = errors.New("season not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPollNotFound       = errors.New("poll not found")

	// Ошибки турниров
	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentDatesRequired           = errors.New("tournament dates are required")
	ErrTournamentInvalidRegDate          = errors.New("tournament registration date cannot be after start date")
	ErrTournamentInvalidDateRange        = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidCapacity         = errors.New("tournament max teams must be positive")
	ErrTournamentInvalidFee              = errors.New("tournament fee cannot be negative")
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrTournamentInUse                   = errors.New("tournament has teams or polls attached")
)
