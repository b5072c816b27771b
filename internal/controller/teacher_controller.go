package controller

import (
	"balance_game_backend/internal/service"
	"balance_game_backend/internal/util"
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TeacherController struct {
	UserService *service.UserService
}

func NewTeacherController(userService *service.UserService) *TeacherController {
	return &TeacherController{UserService: userService}
}

// ListStudents godoc
// @Summary Student progress
// @Description Lists every student with level, xp and accuracy, best first
// @Tags teacher
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ProgressView}
// @Failure 403 {object} util.Response
// @Router /api/teacher/students [get]
func (c *TeacherController) ListStudents(ctx *gin.Context) {
	students, err := c.UserService.ListStudents()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// ExportStudents godoc
// @Summary Export student progress
// @Description Downloads the student list as an xlsx workbook
// @Tags teacher
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 403 {object} util.Response
// @Router /api/teacher/students/export [get]
func (c *TeacherController) ExportStudents(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.UserService.ExportStudents(&buf); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("students-%s.xlsx", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
