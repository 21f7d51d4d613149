package catalog

import "github.com/adb-reso/adb-reso-go/internal/domain"

var commands = []domain.CatalogCommand{
	{ID: "devices", Category: "Basic", Icon: "fa-mobile-alt", Title: "Check Connected Devices", Code: "adb devices", Description: "List devices connected over USB or WiFi"},
	{ID: "shell", Category: "Basic", Icon: "fa-terminal", Title: "Enter ADB Shell", Code: "adb shell", Description: "Open an Android shell"},
	{ID: "reboot", Category: "Basic", Icon: "fa-power-off", Title: "Reboot Device", Code: "adb reboot", Description: "Restart the device"},
	{ID: "size", Category: "Display", Icon: "fa-expand-alt", Title: "Check Current Resolution", Code: "adb shell wm size", Description: "Show the current screen resolution"},
	{ID: "density", Category: "Display", Icon: "fa-ruler-combined", Title: "Check Current DPI", Code: "adb shell wm density", Description: "Show the current DPI"},
	{ID: "reset", Category: "Display", Icon: "fa-undo", Title: "Reset Resolution & DPI", Code: "adb shell wm size reset\nadb shell wm density reset", Description: "Restore the default settings"},
	{ID: "screenshot", Category: "Media", Icon: "fa-camera", Title: "Take Screenshot", Code: "adb shell screencap -p /sdcard/screenshot.png", Description: "Capture a screenshot"},
	{ID: "record", Category: "Media", Icon: "fa-video", Title: "Record Screen", Code: "adb shell screenrecord /sdcard/record.mp4", Description: "Record the screen (Ctrl+C to stop)"},
	{ID: "pull", Category: "File", Icon: "fa-download", Title: "Pull File from Device", Code: "adb pull /sdcard/file.txt .", Description: "Copy a file from the device to the PC"},
	{ID: "push", Category: "File", Icon: "fa-upload", Title: "Push File to Device", Code: "adb push file.txt /sdcard/", Description: "Copy a file from the PC to the device"},
}

// Commands 返回全部命令条目（副本）
func Commands() []domain.CatalogCommand {
	out := make([]domain.CatalogCommand, len(commands))
	copy(out, commands)
	return out
}

// Command 按 ID 查找命令
func Command(id string) (domain.CatalogCommand, error) {
	for _, c := range commands {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.CatalogCommand{}, domain.NewInputError("command", id, domain.ErrNotFound)
}

// CommandGroups 按分类分组，分类顺序为首次出现顺序
func CommandGroups() []domain.CommandGroup {
	var groups []domain.CommandGroup
	index := make(map[string]int)
	for _, c := range commands {
		i, ok := index[c.Category]
		if !ok {
			i = len(groups)
			index[c.Category] = i
			groups = append(groups, domain.CommandGroup{Category: c.Category})
		}
		groups[i].Commands = append(groups[i].Commands, c)
	}
	return groups
}
