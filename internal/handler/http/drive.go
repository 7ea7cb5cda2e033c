package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/necriesa/puso-t-tulong/internal/forms"
	"github.com/necriesa/puso-t-tulong/internal/service"
)

// DriveHandler 封装募捐活动公告的 HTTP 处理逻辑。
type DriveHandler struct {
	driveService *service.DriveService
}

// NewDriveHandler 创建 DriveHandler 实例
func NewDriveHandler(driveService *service.DriveService) *DriveHandler {
	return &DriveHandler{driveService: driveService}
}

// Drives 渲染活动公告列表
func (h *DriveHandler) Drives(c *gin.Context) {
	drives, err := h.driveService.ListDrives(c.Request.Context())
	if err != nil {
		ServerError(c, err)
		return
	}
	c.HTML(http.StatusOK, "drives.html", templateData(c, gin.H{"Drives": drives}))
}

// ShowAddDrive 渲染发布活动的表单
func (h *DriveHandler) ShowAddDrive(c *gin.Context) {
	c.HTML(http.StatusOK, "add_drive.html", templateData(c, gin.H{"Form": forms.New(nil)}))
}

// AddDrive 处理活动发布提交
func (h *DriveHandler) AddDrive(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		ServerError(c, err)
		return
	}
	form := forms.New(c.Request.PostForm)
	form.Required("name", "location")
	form.MaxLength("name", 20)
	form.MaxLength("location", 100)
	form.MaxLength("details", 1000)
	form.IsDate("date")
	if !form.Valid() {
		c.HTML(http.StatusOK, "add_drive.html", templateData(c, gin.H{"Form": form}))
		return
	}

	_, err := h.driveService.CreateDrive(c.Request.Context(),
		form.Get("name"), form.Get("location"), form.Get("details"), form.GetDate("date"))
	if err != nil {
		ServerError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/drives")
}
