package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hangar/internal/apperr"
	"hangar/internal/flash"
)

// GET /fleet [admin]
func ListAircraftHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		aircraft, err := deps.Fleet.ListAircraft(c.Request.Context())
		if err != nil {
			log.Printf("[Fleet] List failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not load the fleet registry.")
			renderPage(c, deps, http.StatusInternalServerError, "fleet.html", nil)
			return
		}
		renderPage(c, deps, http.StatusOK, "fleet.html", gin.H{"aircraft": aircraft})
	}
}

// POST /fleet [admin] — register a new airframe.
func RegisterAircraftHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, yerr := strconv.Atoi(c.PostForm("year_of_manufacture"))
		if yerr != nil {
			queueFlash(c, deps, flash.LevelDanger, "Year of manufacture must be a number.")
			c.Redirect(http.StatusFound, "/fleet")
			return
		}
		var capacity *int
		if raw := c.PostForm("passenger_capacity"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				queueFlash(c, deps, flash.LevelDanger, "Passenger capacity must be a number.")
				c.Redirect(http.StatusFound, "/fleet")
				return
			}
			capacity = &n
		}

		_, err := deps.Fleet.RegisterAircraft(c.Request.Context(),
			c.PostForm("model"), c.PostForm("registration"), year, c.PostForm("manufacturer"), capacity)
		switch {
		case errors.Is(err, apperr.ErrValidation):
			queueFlash(c, deps, flash.LevelDanger, err.Error())
		case errors.Is(err, apperr.ErrDuplicateRegistration):
			queueFlash(c, deps, flash.LevelDanger, "The registration is already in the fleet.")
		case err != nil:
			log.Printf("[Fleet] Register failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not register the aircraft.")
		default:
			queueFlash(c, deps, flash.LevelSuccess, "Aircraft registered successfully.")
		}
		c.Redirect(http.StatusFound, "/fleet")
	}
}

// GET /fleet/:id/edit [admin]
func EditAircraftFormHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			queueFlash(c, deps, flash.LevelDanger, "Aircraft not found.")
			c.Redirect(http.StatusFound, "/fleet")
			return
		}
		ac, err := deps.Fleet.GetAircraft(c.Request.Context(), id)
		if errors.Is(err, apperr.ErrNotFound) {
			queueFlash(c, deps, flash.LevelDanger, "Aircraft not found.")
			c.Redirect(http.StatusFound, "/fleet")
			return
		}
		if err != nil {
			log.Printf("[Fleet] Load for edit failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not load the aircraft.")
			c.Redirect(http.StatusFound, "/fleet")
			return
		}
		renderPage(c, deps, http.StatusOK, "fleet_edit.html", gin.H{"aircraft": ac})
	}
}

// POST /fleet/:id/edit [admin]
func EditAircraftHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			queueFlash(c, deps, flash.LevelDanger, "Aircraft not found.")
			c.Redirect(http.StatusFound, "/fleet")
			return
		}
		year, yerr := strconv.Atoi(c.PostForm("year_of_manufacture"))
		if yerr != nil || year > time.Now().Year() {
			queueFlash(c, deps, flash.LevelDanger, "Year of manufacture must be a year no later than this one.")
			c.Redirect(http.StatusFound, "/fleet/"+c.Param("id")+"/edit")
			return
		}
		var capacity *int
		if raw := c.PostForm("passenger_capacity"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				queueFlash(c, deps, flash.LevelDanger, "Passenger capacity must be a number.")
				c.Redirect(http.StatusFound, "/fleet/"+c.Param("id")+"/edit")
				return
			}
			capacity = &n
		}

		err := deps.Fleet.UpdateAircraft(c.Request.Context(), id,
			c.PostForm("model"), c.PostForm("registration"), year, c.PostForm("manufacturer"), capacity)
		switch {
		case errors.Is(err, apperr.ErrValidation):
			queueFlash(c, deps, flash.LevelDanger, err.Error())
			c.Redirect(http.StatusFound, "/fleet/"+c.Param("id")+"/edit")
			return
		case errors.Is(err, apperr.ErrDuplicateRegistration):
			queueFlash(c, deps, flash.LevelDanger, "The registration is already in the fleet.")
			c.Redirect(http.StatusFound, "/fleet/"+c.Param("id")+"/edit")
			return
		case errors.Is(err, apperr.ErrNotFound):
			queueFlash(c, deps, flash.LevelDanger, "Aircraft not found.")
		case err != nil:
			log.Printf("[Fleet] Update failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not save the aircraft.")
		default:
			queueFlash(c, deps, flash.LevelSuccess, "Aircraft updated successfully.")
		}
		c.Redirect(http.StatusFound, "/fleet")
	}
}

// POST /fleet/:id/delete [admin]
func DeleteAircraftHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if ok {
			if err := deps.Fleet.DeleteAircraft(c.Request.Context(), id); err != nil {
				log.Printf("[Fleet] Delete failed: %v", err)
				queueFlash(c, deps, flash.LevelDanger, "Could not delete the aircraft.")
				c.Redirect(http.StatusFound, "/fleet")
				return
			}
		}
		queueFlash(c, deps, flash.LevelSuccess, "Aircraft deleted successfully.")
		c.Redirect(http.StatusFound, "/fleet")
	}
}

// GET /fleet/:id/parts [admin]
func ListAircraftPartsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			queueFlash(c, deps, flash.LevelDanger, "Aircraft not found.")
			c.Redirect(http.StatusFound, "/fleet")
			return
		}
		ac, err := deps.Fleet.GetAircraft(c.Request.Context(), id)
		if errors.Is(err, apperr.ErrNotFound) {
			queueFlash(c, deps, flash.LevelDanger, "Aircraft not found.")
			c.Redirect(http.StatusFound, "/fleet")
			return
		}
		if err != nil {
			log.Printf("[Fleet] Load failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not load the aircraft.")
			c.Redirect(http.StatusFound, "/fleet")
			return
		}
		linked, err := deps.Fleet.PartsByAircraft(c.Request.Context(), id)
		if err != nil {
			log.Printf("[Fleet] Parts list failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not load the linked parts.")
		}
		renderPage(c, deps, http.StatusOK, "fleet_parts.html", gin.H{
			"aircraft": ac,
			"parts":    linked,
		})
	}
}

// POST /fleet/:id/parts [admin] — link a part to the airframe.
func AddAircraftPartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			queueFlash(c, deps, flash.LevelDanger, "Aircraft not found.")
			c.Redirect(http.StatusFound, "/fleet")
			return
		}
		_, err := deps.Fleet.AddPart(c.Request.Context(), id, c.PostForm("part_name"), c.PostForm("part_number"))
		switch {
		case errors.Is(err, apperr.ErrValidation):
			queueFlash(c, deps, flash.LevelDanger, err.Error())
		case errors.Is(err, apperr.ErrDuplicatePartNumber):
			queueFlash(c, deps, flash.LevelDanger, "The part number is already registered.")
		case err != nil:
			log.Printf("[Fleet] Add part failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not add the part.")
		default:
			queueFlash(c, deps, flash.LevelSuccess, "Part added successfully.")
		}
		c.Redirect(http.StatusFound, "/fleet/"+c.Param("id")+"/parts")
	}
}

// POST /fleet/:id/parts/:partId/delete [admin]
func DeleteAircraftPartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		partID, ok := pathID(c, "partId")
		if ok {
			if err := deps.Fleet.DeletePart(c.Request.Context(), partID); err != nil {
				log.Printf("[Fleet] Delete part failed: %v", err)
				queueFlash(c, deps, flash.LevelDanger, "Could not delete the part.")
				c.Redirect(http.StatusFound, "/fleet/"+c.Param("id")+"/parts")
				return
			}
		}
		queueFlash(c, deps, flash.LevelSuccess, "Part deleted successfully.")
		c.Redirect(http.StatusFound, "/fleet/"+c.Param("id")+"/parts")
	}
}
