package domain

import "time"

type AttendanceRecord struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"-"`
	Date         time.Time  `json:"date"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
}

type AttendanceEntry struct {
	ID          int64     `json:"id"`
	MemberName  string    `json:"member_name"`
	Age         *int      `json:"age,omitempty"`
	Date        time.Time `json:"date"`
	CheckInTime time.Time `json:"check_in_time"`
}

type Announcement struct {
	ID        int64     `json:"id"`
	AdminID   int64     `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AnnouncementInput struct {
	Title    string
	Content  string
	IsActive bool
}

type MemberStats struct {
	TodayAttended       bool `json:"todayAttended"`
	WeekAttendance      int  `json:"weekAttendance"`
	MonthAttendance     int  `json:"monthAttendance"`
	UnreadNotifications int  `json:"unreadNotifications"`
}

type AdminStats struct {
	TotalMembers       int `json:"totalMembers"`
	TodayAttendance    int `json:"todayAttendance"`
	TotalAnnouncements int `json:"totalAnnouncements"`
	ActiveMembers      int `json:"activeMembers"`
}
