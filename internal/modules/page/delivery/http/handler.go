package handler

import (
	"fmt"
	"net/http"
	"strconv"

	categoryDto "clabs.com/website/internal/modules/category/dto"
	category "clabs.com/website/internal/modules/category/service"
	contact "clabs.com/website/internal/modules/contact/service"
	ipDto "clabs.com/website/internal/modules/ipprofile/dto"
	ipprofile "clabs.com/website/internal/modules/ipprofile/service"
	showcase "clabs.com/website/internal/modules/showcase/service"
	"clabs.com/website/internal/modules/tutorial/dto"
	tutorial "clabs.com/website/internal/modules/tutorial/service"
	upload "clabs.com/website/internal/modules/upload/service"
	"clabs.com/website/pkg/apperror"
	commonDto "clabs.com/website/pkg/dto"
	"clabs.com/website/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	featuredTutorials = 3
	workPageLimit     = 24
	dashboardRecent   = 5
	uploadsPageLimit  = 50
)

var (
	profileStatuses    = []string{"active", "inactive", "archived"}
	tutorialStatuses   = []string{"draft", "published", "archived"}
	tutorialDifficulty = []string{"beginner", "intermediate", "advanced"}
	errInvalidID       = apperror.BadRequest("invalid id")
)

type Deps struct {
	Profiles   ipprofile.ProfileService
	Showcase   showcase.ShowcaseService
	Tutorials  tutorial.TutorialService
	Categories category.CategoryService
	Uploads    upload.UploadService
	Contacts   contact.ContactService
	// FeaturedIPs are the showcase slugs listed on the home page.
	FeaturedIPs []string
	// IsAuthenticated lets the login page skip straight to the dashboard.
	IsAuthenticated func(c *gin.Context) bool
	Logger          *zap.Logger
}

type PageHandler struct {
	deps Deps
}

func NewPageHandler(deps Deps) *PageHandler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &PageHandler{deps: deps}
}

// Static renders a page that needs no data.
func (h *PageHandler) Static(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, gin.H{"Title": title})
	}
}

func (h *PageHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	showcases := make([]*showcase.View, 0, len(h.deps.FeaturedIPs))
	for _, slug := range h.deps.FeaturedIPs {
		v, err := h.deps.Showcase.Get(ctx, slug)
		if err != nil {
			h.deps.Logger.Warn("featured ip unavailable", zap.String("slug", slug), zap.Error(err))
			continue
		}
		showcases = append(showcases, v)
	}

	featured, err := h.deps.Tutorials.ListFeatured(ctx, featuredTutorials)
	if err != nil {
		h.deps.Logger.Warn("featured tutorials unavailable", zap.Error(err))
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Showcases": showcases,
		"Featured":  featured,
	})
}

func (h *PageHandler) Work(c *gin.Context) {
	ctx := c.Request.Context()

	works, err := h.deps.Profiles.ListPublishedWorks(ctx, workPageLimit)
	if err != nil {
		response.ErrorPage(c, err, "/", "返回首页")
		return
	}

	// an empty database still shows the featured creators' work
	if len(works) == 0 {
		for _, slug := range h.deps.FeaturedIPs {
			v, err := h.deps.Showcase.Get(ctx, slug)
			if err != nil {
				continue
			}
			works = append(works, v.Works...)
		}
	}

	c.HTML(http.StatusOK, "work.html", gin.H{"Title": "作品", "Works": works})
}

func (h *PageHandler) IPShowcase(c *gin.Context) {
	v, err := h.deps.Showcase.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.ErrorPage(c, err, "/", "返回首页")
		return
	}
	c.HTML(http.StatusOK, "ip.html", gin.H{"Title": v.Profile.DisplayName, "View": v})
}

func (h *PageHandler) Tutorials(c *gin.Context) {
	ctx := c.Request.Context()

	categories, err := h.deps.Categories.GetAllCategories(ctx)
	if err != nil {
		response.ErrorPage(c, err, "/", "返回首页")
		return
	}
	featured, err := h.deps.Tutorials.ListFeatured(ctx, featuredTutorials)
	if err != nil {
		response.ErrorPage(c, err, "/", "返回首页")
		return
	}

	c.HTML(http.StatusOK, "tutorials.html", gin.H{
		"Title":      "Web3 学院",
		"Categories": categories,
		"Featured":   featured,
	})
}

func (h *PageHandler) TutorialCategory(c *gin.Context) {
	ctx := c.Request.Context()

	cat, err := h.deps.Categories.GetCategory(ctx, c.Param("category"))
	if err != nil {
		response.ErrorPage(c, err, "/tutorials", "返回 Web3 学院")
		return
	}

	var page commonDto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		page = commonDto.PageQuery{}
	}
	list, err := h.deps.Tutorials.ListByCategory(ctx, cat.Slug, page)
	if err != nil {
		response.ErrorPage(c, err, "/tutorials", "返回 Web3 学院")
		return
	}

	all, err := h.deps.Categories.GetAllCategories(ctx)
	if err != nil {
		response.ErrorPage(c, err, "/tutorials", "返回 Web3 学院")
		return
	}
	others := make([]categoryDto.CategoryResponse, 0, len(all))
	for _, other := range all {
		if other.Slug != cat.Slug {
			others = append(others, other)
		}
	}

	c.HTML(http.StatusOK, "tutorial_category.html", gin.H{
		"Title":     cat.Name,
		"Category":  cat,
		"Tutorials": list.Data,
		"Meta":      list.Meta,
		"Others":    others,
	})
}

func (h *PageHandler) TutorialArticle(c *gin.Context) {
	ctx := c.Request.Context()
	categorySlug := c.Param("category")

	t, err := h.deps.Tutorials.ReadArticle(ctx, c.Param("slug"), c.ClientIP())
	if err != nil {
		response.ErrorPage(c, err, "/tutorials/"+categorySlug, "返回分类")
		return
	}
	if t.Category != categorySlug {
		c.Redirect(http.StatusMovedPermanently, fmt.Sprintf("/tutorials/%s/%s", t.Category, t.Slug))
		return
	}

	// a renamed category only loses the breadcrumb
	cat, err := h.deps.Categories.GetCategory(ctx, t.Category)
	if err != nil {
		cat = nil
	}

	c.HTML(http.StatusOK, "tutorial_article.html", gin.H{
		"Title":    t.Title,
		"Tutorial": t,
		"Category": cat,
	})
}

func (h *PageHandler) AdminLogin(c *gin.Context) {
	if h.deps.IsAuthenticated != nil && h.deps.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.HTML(http.StatusOK, "admin_login.html", gin.H{"Title": "登录"})
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	ipCount, err := h.deps.Profiles.CountProfiles(ctx)
	if err != nil {
		response.ErrorPage(c, err, "/", "返回首页")
		return
	}
	tutorialCount, err := h.deps.Tutorials.CountPublished(ctx)
	if err != nil {
		response.ErrorPage(c, err, "/", "返回首页")
		return
	}
	uploadCount, err := h.deps.Uploads.Count(ctx)
	if err != nil {
		response.ErrorPage(c, err, "/", "返回首页")
		return
	}
	recentUploads, err := h.deps.Uploads.ListRecent(ctx, dashboardRecent)
	if err != nil {
		response.ErrorPage(c, err, "/", "返回首页")
		return
	}
	recentMessages, err := h.deps.Contacts.Recent(ctx, dashboardRecent)
	if err != nil {
		response.ErrorPage(c, err, "/", "返回首页")
		return
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"Title":          "仪表盘",
		"IPCount":        ipCount,
		"TutorialCount":  tutorialCount,
		"UploadCount":    uploadCount,
		"RecentUploads":  recentUploads,
		"RecentMessages": recentMessages,
	})
}

func (h *PageHandler) IPManage(c *gin.Context) {
	profiles, err := h.deps.Profiles.ListProfiles(c.Request.Context())
	if err != nil {
		response.ErrorPage(c, err, "/admin", "返回仪表盘")
		return
	}
	c.HTML(http.StatusOK, "admin_ip_manage.html", gin.H{"Title": "IP 管理", "Profiles": profiles})
}

func (h *PageHandler) IPAdd(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_ip_form.html", gin.H{
		"Title":    "添加 IP",
		"Profile":  (*ipDto.ProfileResponse)(nil),
		"Endpoint": "/api/admin/ip/create",
		"Method":   http.MethodPost,
		"Statuses": profileStatuses,
	})
}

func (h *PageHandler) IPEdit(c *gin.Context) {
	id, ok := h.pathID(c, "/admin/ip/manage", "返回 IP 管理")
	if !ok {
		return
	}

	profile, err := h.deps.Profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.ErrorPage(c, err, "/admin/ip/manage", "返回 IP 管理")
		return
	}

	c.HTML(http.StatusOK, "admin_ip_form.html", gin.H{
		"Title":    "编辑 IP",
		"Profile":  profile,
		"Endpoint": fmt.Sprintf("/api/admin/ip/%d", id),
		"Method":   http.MethodPut,
		"Statuses": profileStatuses,
	})
}

func (h *PageHandler) IPAnalytics(c *gin.Context) {
	id, ok := h.pathID(c, "/admin/ip/manage", "返回 IP 管理")
	if !ok {
		return
	}

	analytics, err := h.deps.Profiles.Analytics(c.Request.Context(), id)
	if err != nil {
		response.ErrorPage(c, err, "/admin/ip/manage", "返回 IP 管理")
		return
	}
	c.HTML(http.StatusOK, "admin_ip_analytics.html", gin.H{"Title": "数据分析", "Analytics": analytics})
}

func (h *PageHandler) IPWorks(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := h.pathID(c, "/admin/ip/manage", "返回 IP 管理")
	if !ok {
		return
	}

	profile, err := h.deps.Profiles.GetProfile(ctx, id)
	if err != nil {
		response.ErrorPage(c, err, "/admin/ip/manage", "返回 IP 管理")
		return
	}
	works, err := h.deps.Profiles.ListWorks(ctx, id)
	if err != nil {
		response.ErrorPage(c, err, "/admin/ip/manage", "返回 IP 管理")
		return
	}
	platforms, err := h.deps.Profiles.ListPlatforms(ctx, id)
	if err != nil {
		response.ErrorPage(c, err, "/admin/ip/manage", "返回 IP 管理")
		return
	}

	c.HTML(http.StatusOK, "admin_ip_works.html", gin.H{
		"Title":     "作品管理",
		"Profile":   profile,
		"Works":     works,
		"Platforms": platforms,
	})
}

func (h *PageHandler) Uploads(c *gin.Context) {
	uploads, err := h.deps.Uploads.ListRecent(c.Request.Context(), uploadsPageLimit)
	if err != nil {
		response.ErrorPage(c, err, "/admin", "返回仪表盘")
		return
	}
	c.HTML(http.StatusOK, "admin_uploads.html", gin.H{"Title": "上传文件", "Uploads": uploads})
}

func (h *PageHandler) TutorialsManage(c *gin.Context) {
	ctx := c.Request.Context()

	var filter dto.TutorialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		filter = dto.TutorialFilter{}
	}
	if filter.Status == "" {
		filter.Status = "all"
	}
	if filter.Category == "" {
		filter.Category = "all"
	}

	list, err := h.deps.Tutorials.ListTutorials(ctx, filter)
	if err != nil {
		response.ErrorPage(c, err, "/admin", "返回仪表盘")
		return
	}
	categories, err := h.deps.Categories.GetAllCategories(ctx)
	if err != nil {
		response.ErrorPage(c, err, "/admin", "返回仪表盘")
		return
	}

	c.HTML(http.StatusOK, "admin_tutorials_manage.html", gin.H{
		"Title":      "教程管理",
		"Tutorials":  list.Data,
		"Meta":       list.Meta,
		"Categories": categories,
		"Statuses":   append([]string{"all"}, tutorialStatuses...),
		"Status":     filter.Status,
		"Category":   filter.Category,
	})
}

func (h *PageHandler) TutorialAdd(c *gin.Context) {
	h.tutorialForm(c, nil, "/api/admin/tutorials/create", http.MethodPost)
}

func (h *PageHandler) TutorialEdit(c *gin.Context) {
	id, ok := h.pathID(c, "/admin/tutorials/manage", "返回教程管理")
	if !ok {
		return
	}

	t, err := h.deps.Tutorials.GetTutorial(c.Request.Context(), id)
	if err != nil {
		response.ErrorPage(c, err, "/admin/tutorials/manage", "返回教程管理")
		return
	}
	h.tutorialForm(c, t, fmt.Sprintf("/api/admin/tutorials/%d", id), http.MethodPut)
}

func (h *PageHandler) tutorialForm(c *gin.Context, t *dto.TutorialResponse, endpoint, method string) {
	categories, err := h.deps.Categories.GetAllCategories(c.Request.Context())
	if err != nil {
		response.ErrorPage(c, err, "/admin/tutorials/manage", "返回教程管理")
		return
	}

	title := "新建教程"
	if t != nil {
		title = "编辑教程"
	}
	c.HTML(http.StatusOK, "admin_tutorial_form.html", gin.H{
		"Title":        title,
		"Tutorial":     t,
		"Categories":   categories,
		"Endpoint":     endpoint,
		"Method":       method,
		"Statuses":     tutorialStatuses,
		"Difficulties": tutorialDifficulty,
	})
}

func (h *PageHandler) pathID(c *gin.Context, backURL, backLabel string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.ErrorPage(c, errInvalidID, backURL, backLabel)
		return 0, false
	}
	return uint(id), true
}
