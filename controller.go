package maestro

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

// ControllerViews names the templates the auth controller renders.
type ControllerViews struct {
	Login    string
	Register string
	Profile  string
}

// AuthController serves the login, registration, and profile forms of the
// dashboard shell on top of the session store.
type AuthController struct {
	Session *SessionStore
	Guard   *RouteGuard
	Views   ControllerViews
	Logger  Logger
}

func NewAuthController(session *SessionStore, guard *RouteGuard) *AuthController {
	return &AuthController{
		Session: session,
		Guard:   guard,
		Views: ControllerViews{
			Login:    "auth/login",
			Register: "auth/register",
			Profile:  "auth/profile",
		},
		Logger: defLogger{},
	}
}

func (a *AuthController) WithLogger(logger Logger) *AuthController {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// RegisterAuthRoutes mounts the controller plus the guard on a router.
func RegisterAuthRoutes[T any](app router.Router[T], a *AuthController) {
	app.Get("/login", a.LoginShow)
	app.Post("/login", a.LoginPost)
	app.Get("/logout", a.Logout)

	app.Get("/register", a.RegistrationShow)
	app.Post("/register", a.RegistrationCreate)

	guarded := a.Guard.Middleware()
	app.Get("/profile", guarded(a.ProfileShow))
	app.Post("/profile", guarded(a.ProfileUpdate))
}

func (a *AuthController) LoginShow(ctx router.Context) error {
	if a.Session.IsAuthenticated() {
		return ctx.Redirect(a.Guard.GetRedirectOrDefault(ctx), http.StatusFound)
	}

	return ctx.Render(a.Views.Login, router.ViewContext{
		"error":  nil,
		"record": nil,
	})
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(Credentials)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Login, router.ViewContext{
			"record": payload,
		})
	}

	if ok := a.Session.Login(ctx.Context(), *payload); !ok {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": a.Session.LastError(),
		}).Status(fiber.StatusUnauthorized).Render(a.Views.Login, router.ViewContext{
			"record": payload,
		})
	}

	return ctx.Redirect(a.Guard.GetRedirectOrDefault(ctx), http.StatusSeeOther)
}

func (a *AuthController) Logout(ctx router.Context) error {
	a.Session.Logout()
	return ctx.Redirect("/login", http.StatusSeeOther)
}

func (a *AuthController) RegistrationShow(ctx router.Context) error {
	return ctx.Render(a.Views.Register, router.ViewContext{
		"errors": map[string]string{},
		"record": RegistrationForm{},
	})
}

// RegistrationForm is the registration form payload; it wraps RegisterPayload
// with the confirmation field the form carries.
type RegistrationForm struct {
	Email           string `form:"email" json:"email"`
	Username        string `form:"username" json:"username"`
	FullName        string `form:"full_name" json:"full_name"`
	Phone           string `form:"phone_number" json:"phone_number"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

func (r RegistrationForm) payload() RegisterPayload {
	return RegisterPayload{
		Email:    r.Email,
		Username: r.Username,
		FullName: r.FullName,
		Phone:    r.Phone,
		Password: r.Password,
	}
}

// Validate will validate the payload
func (r RegistrationForm) Validate() error {
	if err := r.payload().Validate(); err != nil {
		return err
	}

	return validation.ValidateStruct(&r,
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegistrationForm)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Register, router.ViewContext{
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register validate payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error validating payload",
		}).Render(a.Views.Register, router.ViewContext{
			"record": payload,
		})
	}

	if ok := a.Session.Register(ctx.Context(), payload.payload()); !ok {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": a.Session.LastError(),
		}).Status(fiber.StatusBadRequest).Render(a.Views.Register, router.ViewContext{
			"record": payload,
		})
	}

	return ctx.Redirect(a.Guard.GetRedirectOrDefault(ctx), http.StatusSeeOther)
}

func (a *AuthController) ProfileShow(ctx router.Context) error {
	return ctx.Render(a.Views.Profile, router.ViewContext(
		MergeTemplateHelpers(a.Session, map[string]any{
			"record": a.Session.Identity(),
		}),
	))
}

func (a *AuthController) ProfileUpdate(ctx router.Context) error {
	payload := new(ProfileUpdate)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("profile parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Profile, router.ViewContext{
			"record": a.Session.Identity(),
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("profile validate payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message": err.Error(),
		}).Render(a.Views.Profile, router.ViewContext{
			"record": a.Session.Identity(),
		})
	}

	if ok := a.Session.UpdateProfile(ctx.Context(), *payload); !ok {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": a.Session.LastError(),
		}).Render(a.Views.Profile, router.ViewContext{
			"record": a.Session.Identity(),
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Profile updated",
	}).Render(a.Views.Profile, router.ViewContext{
		"record": a.Session.Identity(),
	})
}

// ValidateStringEquals builds an ozzo rule asserting equality with expected.
func ValidateStringEquals(expected string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != expected {
			return errors.New("values must match")
		}
		return nil
	}
}
