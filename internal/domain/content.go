package domain

import "time"

// Post is a bilingual blog entry. Body* fields hold markdown as written by
// the admin; BodyHtml* hold the rendered and sanitized output served to the
// public site.
type Post struct {
	Id         int64
	Slug       string
	TitleAr    string
	TitleEn    string
	BodyAr     string
	BodyEn     string
	BodyHtmlAr string
	BodyHtmlEn string
	CoverUrl   string
	Published  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Review struct {
	Id        int64
	Author    string
	Company   string
	Rating    int // 1..5
	Text      string
	Approved  bool
	CreatedAt time.Time
}

type Brand struct {
	Id      int64
	Name    string
	LogoUrl string
}

type Subscriber struct {
	Id        int64
	Email     Email
	CreatedAt time.Time
}
