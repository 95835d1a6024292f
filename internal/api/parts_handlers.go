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

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// GET /parts [admin]
func ListPartsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := deps.Parts.List(c.Request.Context())
		if err != nil {
			log.Printf("[Parts] List failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not load the parts catalog.")
			renderPage(c, deps, http.StatusInternalServerError, "parts.html", nil)
			return
		}
		notifications, err := deps.Parts.PendingNotifications(c.Request.Context(), time.Now())
		if err != nil {
			// The list still renders; reminders are an overlay, not the page.
			log.Printf("[Parts] Notification scan failed: %v", err)
		}
		renderPage(c, deps, http.StatusOK, "parts.html", gin.H{
			"items":         items,
			"notifications": notifications,
		})
	}
}

type partForm struct {
	PartNumber   string
	ItemName     string
	Chapter      string
	ReminderDate string
}

func readPartForm(c *gin.Context) partForm {
	return partForm{
		PartNumber:   c.PostForm("part_number"),
		ItemName:     c.PostForm("item_name"),
		Chapter:      c.PostForm("chapter"),
		ReminderDate: c.PostForm("reminder_date"),
	}
}

// GET /parts/create [admin]
func CreatePartFormHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPage(c, deps, http.StatusOK, "part_form.html", gin.H{
			"action": "/parts/create",
			"title":  "Add part",
			"form":   partForm{},
		})
	}
}

// POST /parts/create [admin]
func CreatePartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := readPartForm(c)
		chapter, err := strconv.Atoi(form.Chapter)
		if err != nil {
			queueFlash(c, deps, flash.LevelDanger, "Chapter must be a number.")
			renderPage(c, deps, http.StatusBadRequest, "part_form.html", gin.H{
				"action": "/parts/create", "title": "Add part", "form": form,
			})
			return
		}

		_, err = deps.Parts.Create(c.Request.Context(), form.PartNumber, form.ItemName, chapter, form.ReminderDate)
		switch {
		case errors.Is(err, apperr.ErrValidation):
			queueFlash(c, deps, flash.LevelDanger, err.Error())
			renderPage(c, deps, http.StatusBadRequest, "part_form.html", gin.H{
				"action": "/parts/create", "title": "Add part", "form": form,
			})
			return
		case err != nil:
			log.Printf("[Parts] Create failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not save the part.")
			c.Redirect(http.StatusFound, "/parts")
			return
		}

		queueFlash(c, deps, flash.LevelSuccess, "Part created successfully.")
		c.Redirect(http.StatusFound, "/parts")
	}
}

// GET /parts/update/:id [admin]
func UpdatePartFormHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			queueFlash(c, deps, flash.LevelDanger, "Part not found.")
			c.Redirect(http.StatusFound, "/parts")
			return
		}
		part, err := deps.Parts.Get(c.Request.Context(), id)
		if errors.Is(err, apperr.ErrNotFound) {
			queueFlash(c, deps, flash.LevelDanger, "Part not found.")
			c.Redirect(http.StatusFound, "/parts")
			return
		}
		if err != nil {
			log.Printf("[Parts] Load for edit failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not load the part.")
			c.Redirect(http.StatusFound, "/parts")
			return
		}
		renderPage(c, deps, http.StatusOK, "part_form.html", gin.H{
			"action": "/parts/update/" + c.Param("id"),
			"title":  "Edit part",
			"form": partForm{
				PartNumber:   part.PartNumber,
				ItemName:     part.ItemName,
				Chapter:      strconv.Itoa(part.Chapter),
				ReminderDate: part.ReminderDate,
			},
		})
	}
}

// POST /parts/update/:id [admin]
func UpdatePartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			queueFlash(c, deps, flash.LevelDanger, "Part not found.")
			c.Redirect(http.StatusFound, "/parts")
			return
		}
		form := readPartForm(c)
		chapter, err := strconv.Atoi(form.Chapter)
		if err != nil {
			queueFlash(c, deps, flash.LevelDanger, "Chapter must be a number.")
			renderPage(c, deps, http.StatusBadRequest, "part_form.html", gin.H{
				"action": "/parts/update/" + c.Param("id"), "title": "Edit part", "form": form,
			})
			return
		}

		err = deps.Parts.Update(c.Request.Context(), id, form.PartNumber, form.ItemName, chapter, form.ReminderDate)
		switch {
		case errors.Is(err, apperr.ErrValidation):
			queueFlash(c, deps, flash.LevelDanger, err.Error())
			renderPage(c, deps, http.StatusBadRequest, "part_form.html", gin.H{
				"action": "/parts/update/" + c.Param("id"), "title": "Edit part", "form": form,
			})
			return
		case errors.Is(err, apperr.ErrNotFound):
			queueFlash(c, deps, flash.LevelDanger, "Part not found.")
			c.Redirect(http.StatusFound, "/parts")
			return
		case err != nil:
			log.Printf("[Parts] Update failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Could not save the part.")
			c.Redirect(http.StatusFound, "/parts")
			return
		}

		queueFlash(c, deps, flash.LevelSuccess, "Part updated successfully.")
		c.Redirect(http.StatusFound, "/parts")
	}
}

// POST /parts/delete/:id [admin]
func DeletePartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if ok {
			if err := deps.Parts.Delete(c.Request.Context(), id); err != nil {
				log.Printf("[Parts] Delete failed: %v", err)
				queueFlash(c, deps, flash.LevelDanger, "Could not delete the part.")
				c.Redirect(http.StatusFound, "/parts")
				return
			}
		}
		queueFlash(c, deps, flash.LevelSuccess, "Part deleted successfully.")
		c.Redirect(http.StatusFound, "/parts")
	}
}

// GET /search [any authenticated role]
func SearchFormHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPage(c, deps, http.StatusOK, "search.html", gin.H{"searched": false})
	}
}

// POST /search [any authenticated role]
func SearchHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.PostForm("finder")
		results, err := deps.Parts.Search(c.Request.Context(), query)
		if err != nil {
			log.Printf("[Parts] Search failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Search failed. Please try again.")
			renderPage(c, deps, http.StatusInternalServerError, "search.html", gin.H{"searched": false})
			return
		}
		renderPage(c, deps, http.StatusOK, "search.html", gin.H{
			"searched": true,
			"query":    query,
			"results":  results,
		})
	}
}
