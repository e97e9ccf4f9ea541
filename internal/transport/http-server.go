package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/config"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/objectstore"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/reminder"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/service"
)

type (
	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		db        *gorm.DB
		svc       *service.General
		generator *reminder.Generator
		objects   *objectstore.Client
		logger    *zap.SugaredLogger
	}
)

var Module = fx.Provide(
	NewHTTPServer,
)

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, gdb *gorm.DB, svc *service.General,
	generator *reminder.Generator, objects *objectstore.Client, logger *zap.SugaredLogger) *HTTPServer {
	instance := HTTPServer{
		db:        gdb,
		svc:       svc,
		generator: generator,
		objects:   objects,
		logger:    logger,
	}

	e := instance.BuildEcho()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return &instance
}

// BuildEcho wires routes and middleware; split from NewHTTPServer so handler
// tests can run against the router without the fx lifecycle.
func (s *HTTPServer) BuildEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.POST("/auth/register", s.Register)
	e.POST("/auth/login", s.Login)

	contactG := e.Group("/contacts")
	contactG.GET("", s.ContactList)
	contactG.GET("/:id", s.ContactGet)
	contactG.POST("", s.ContactCreate)
	contactG.PUT("/:id", s.ContactUpdate)
	contactG.DELETE("/:id", s.ContactDelete)

	eventG := e.Group("/events")
	eventG.GET("", s.EventList)
	eventG.GET("/:id", s.EventGet)
	eventG.POST("", s.EventCreate)
	eventG.PUT("/:id", s.EventUpdate)
	eventG.DELETE("/:id", s.EventDelete)

	giftG := e.Group("/gifts")
	giftG.GET("", s.GiftList)
	giftG.GET("/:id", s.GiftGet)
	giftG.POST("", s.GiftCreate)
	giftG.PUT("/:id", s.GiftUpdate)
	giftG.DELETE("/:id", s.GiftDelete)

	userG := e.Group("/users")
	userG.GET("/:id", s.UserGet)
	userG.POST("", s.UserCreate)
	userG.PUT("/:id", s.UserUpdate)
	userG.DELETE("/:id", s.UserDelete)

	notificationG := e.Group("/notifications")
	notificationG.GET("", s.NotificationList)
	notificationG.GET("/:id", s.NotificationGet)
	notificationG.PUT("/:id", s.NotificationUpdate)
	notificationG.DELETE("/:id", s.NotificationDelete)

	e.POST("/images/upload-url", s.ImageUploadURL)
	e.POST("/reminders/run", s.ReminderRun)

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(s.TimingMiddleware)
	e.Use(s.AuthMiddleware)

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = s.ErrorHandler

	echo.NotFoundHandler = func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "not found"})
	}
	echo.MethodNotAllowedHandler = func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "unsupported method"})
	}

	return e
}

func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.HasPrefix(c.Path(), "/auth/") || c.Path() == "/ping" {
			return next(c)
		}
		token := ""
		for key, values := range c.Request().Header {
			if strings.ToLower(key) == "x-token" {
				token = values[0]
				break
			}
		}
		if token == "" {
			return c.NoContent(http.StatusUnauthorized)
		}
		user := db.User{}
		res := s.db.Where("token = ?", token).First(&user)
		if res.Error != nil {
			s.logger.Error(errors.Wrap(res.Error, "find user in db"))
			return c.NoContent(http.StatusUnauthorized)
		}

		c.Set("user", &user)
		return next(c)
	}
}

func (s *HTTPServer) TimingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.logger.Debugw("request handled",
			"method", c.Request().Method,
			"path", c.Path(),
			"took", time.Since(start))
		return err
	}
}

// ErrorHandler maps sentinel errors to their statuses and everything else to
// a generic 500; callers never see internal error detail.
func (s *HTTPServer) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	} else if errors.Is(err, service.ErrNotFound) {
		code = http.StatusNotFound
		message = "not found"
	} else {
		s.logger.Errorw("unhandled error", "error", err, "path", c.Path())
	}

	if jsonErr := c.JSON(code, map[string]string{"message": message}); jsonErr != nil {
		s.logger.Error(errors.Wrap(jsonErr, "write error response"))
	}
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func GetUserFromContext(c echo.Context) (*db.User, error) {
	user, ok := c.Get("user").(*db.User)
	if !ok || user == nil {
		return nil, errors.New("no user found in context")
	}
	return user, nil
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return value, nil
}
