package catalog

import "github.com/adb-reso/adb-reso-go/internal/domain"

var methods = []domain.ExecutionMethod{
	{
		ID:          domain.MethodTermux,
		DisplayName: "Termux",
		Icon:        "fa-terminal",
		Color:       "#3ddc84",
		Summary:     "Run ADB commands directly on Android from Termux.",
		Guide: []domain.GuideStep{
			{Title: "Install Termux", Detail: "Download from F-Droid (recommended) or the Play Store", Link: "https://f-droid.org/en/packages/com.termux/"},
			{Title: "Update & install ADB", Code: []string{"pkg update && pkg upgrade", "pkg install android-tools"}},
			{Title: "Enable USB debugging", Detail: "On the target device: Settings > About phone, tap Build number 7 times, then enable USB debugging in Developer options"},
			{Title: "Connect the device", Detail: "Make sure the device is listed", Code: []string{"adb devices"}},
		},
		Note:         "Requires a USB OTG cable and ADB access already enabled.",
		AppLaunchURI: "termux://",
	},
	{
		ID:          domain.MethodLADB,
		DisplayName: "LADB",
		Icon:        "fa-wifi",
		Color:       "#4285f4",
		Summary:     "Use wireless ADB debugging through the LADB app.",
		Guide: []domain.GuideStep{
			{Title: "Install LADB", Detail: "Download from the Play Store (paid)", Link: "https://play.google.com/store/apps/details?id=com.ttxapps.ladb"},
			{Title: "Enable wireless debugging", Detail: "On the same device: Developer options > Wireless debugging, note the IP address and port"},
			{Title: "Connect in LADB", Detail: "Replace with your IP and port", Code: []string{"adb connect 192.168.x.x:xxxxx"}},
			{Title: "Run the commands", Detail: "Copy the commands from this app and paste them into LADB"},
		},
		Note:         "Needs a stable WiFi connection.",
		AppLaunchURI: "market://details?id=com.ttxapps.ladb",
	},
	{
		ID:          domain.MethodShizuku,
		DisplayName: "Shizuku",
		Icon:        "fa-crown",
		Color:       "#8b5cf6",
		Summary:     "Run ADB commands without root through the Shizuku framework.",
		Guide: []domain.GuideStep{
			{Title: "Install Shizuku", Detail: "Download from GitHub or through Magisk", Link: "https://github.com/RikkaApps/Shizuku"},
			{Title: "Start Shizuku", Detail: "Over ADB (needs a PC the first time)", Code: []string{"adb shell sh /sdcard/Android/data/moe.shizuku.privileged.api/start.sh"}},
			{Title: "Set up Shizuku in Termux", Code: []string{"pkg install shizuku", `export ADB_PATH="shizuku"`}},
			{Title: "Run the commands", Detail: "Prefix every ADB command", Code: []string{"shizuku exec [command]"}},
		},
		Note:         "More involved, intended for advanced users.",
		AppLaunchURI: "https://github.com/RikkaApps/Shizuku",
	},
}

// Methods 返回全部执行方式（副本）
func Methods() []domain.ExecutionMethod {
	out := make([]domain.ExecutionMethod, len(methods))
	copy(out, methods)
	return out
}

// Method 按 ID 查找执行方式
func Method(id domain.MethodID) (domain.ExecutionMethod, error) {
	for _, m := range methods {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.ExecutionMethod{}, domain.NewInputError("method", string(id), domain.ErrNotFound)
}
