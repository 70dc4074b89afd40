package app

import (
	"errors"

	"backend-mapty/internal/form"
	"backend-mapty/internal/render"
	"backend-mapty/internal/shared/geo"
	"backend-mapty/internal/workout"

	"github.com/gofiber/fiber/v2"
)

// PositionSink receives the browser's geolocation result.
type PositionSink interface {
	Resolve(coords geo.Coordinates) bool
	Fail(err error) bool
}

// ClickSink receives clicks on the browser map.
type ClickSink interface {
	Click(coords geo.Coordinates) bool
}

type latLng struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (p latLng) coordinates() (geo.Coordinates, error) {
	if p.Lat == nil || p.Lng == nil {
		return geo.Coordinates{}, errors.New("lat and lng required")
	}
	coords := geo.New(*p.Lat, *p.Lng)
	if err := coords.Validate(); err != nil {
		return geo.Coordinates{}, err
	}
	return coords, nil
}

func parseCoordinates(c *fiber.Ctx) (geo.Coordinates, error) {
	var body latLng
	if err := c.BodyParser(&body); err != nil {
		return geo.Coordinates{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	coords, err := body.coordinates()
	if err != nil {
		return geo.Coordinates{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return coords, nil
}

func RegisterRoutes(r fiber.Router, ctrl *Controller, positions PositionSink, clicks ClickSink, topic string) {
	r.Get("/", func(c *fiber.Ctx) error {
		ctrl.Boot(c.Context())
		data := ctrl.PageData()
		data.Topic = topic
		c.Type("html", "utf-8")
		return render.Page(c, data)
	})

	r.Post("/geolocation", func(c *fiber.Ctx) error {
		coords, err := parseCoordinates(c)
		if err != nil {
			return err
		}
		if !positions.Resolve(coords) {
			return fiber.NewError(fiber.StatusConflict, "no position request pending")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/geolocation/error", func(c *fiber.Ctx) error {
		var body struct {
			Message string `json:"message"`
		}
		// The message is informational; an unreadable body reports the default.
		_ = c.BodyParser(&body)
		if body.Message == "" {
			body.Message = "position unavailable"
		}
		if !positions.Fail(errors.New(body.Message)) {
			return fiber.NewError(fiber.StatusConflict, "no position request pending")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/map/click", func(c *fiber.Ctx) error {
		coords, err := parseCoordinates(c)
		if err != nil {
			return err
		}
		if !clicks.Click(coords) {
			return fiber.NewError(fiber.StatusConflict, "map not ready")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/form/type", func(c *fiber.Ctx) error {
		var body struct {
			Type string `json:"type" form:"type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		field, err := ctrl.SelectType(body.Type)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"visible": field})
	})

	r.Post("/workouts", func(c *fiber.Ctx) error {
		var values form.Values
		if err := c.BodyParser(&values); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		w, err := ctrl.Submit(c.Context(), values)
		switch {
		case errors.Is(err, form.ErrInvalidInput):
			return fiber.NewError(fiber.StatusUnprocessableEntity, form.InvalidInputMessage)
		case errors.Is(err, ErrNoLocation):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(w.Record())
	})

	r.Get("/workouts", func(c *fiber.Ctx) error {
		workouts := ctrl.Workouts()
		records := make([]workout.Record, 0, len(workouts))
		for _, w := range workouts {
			records = append(records, w.Record())
		}
		return c.JSON(records)
	})

	r.Post("/workouts/:id/select", func(c *fiber.Ctx) error {
		ctrl.SelectRow(c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/reset", func(c *fiber.Ctx) error {
		if err := ctrl.Reset(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
