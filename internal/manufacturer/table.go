package manufacturer

// builtin is the known vendor table. Order matters: Lookup returns the first
// entry that lists the brand, and components are tried top to bottom.
var builtin = []Manufacturer{
	{
		Name:   "Xiaomi",
		Brands: []string{"xiaomi", "poco", "redmi"},
		Components: []Component{
			{"com.miui.securitycenter", "com.miui.permcenter.autostart.AutoStartManagementActivity"},
			{"com.miui.permcenter", "com.miui.permcenter.autostart.AutoStartManagementActivity"},
		},
	},
	{
		Name:   "Letv",
		Brands: []string{"letv"},
		Components: []Component{
			{"com.letv.android.letvsafe", "com.letv.android.letvsafe.AutobootManageActivity"},
		},
	},
	{
		Name:   "Asus",
		Brands: []string{"asus"},
		Components: []Component{
			{"com.asus.mobilemanager", "com.asus.mobilemanager.powersaver.PowerSaverSettings"},
			{"com.asus.mobilemanager", "com.asus.mobilemanager.autostart.AutoStartActivity"},
			{"com.asus.mobilemanager", "com.asus.mobilemanager.autostart.AutoStartServiceActivity"},
		},
	},
	{
		Name:   "Honor",
		Brands: []string{"honor"},
		Components: []Component{
			{"com.huawei.systemmanager", "com.huawei.systemmanager.optimize.process.ProtectActivity"},
			{"com.hihonor.systemmanager", "com.hihonor.systemmanager.optimize.process.ProtectActivity"},
		},
	},
	{
		Name:   "Huawei",
		Brands: []string{"huawei"},
		Components: []Component{
			{"com.huawei.systemmanager", "com.huawei.systemmanager.startupmgr.ui.StartupNormalAppListActivity"},
			{"com.huawei.systemmanager", "com.huawei.systemmanager.optimize.process.ProtectActivity"},
			{"com.huawei.systemmanager", "com.huawei.systemmanager.appcontrol.activity.StartupAppControlActivity"},
		},
	},
	{
		Name:   "Oppo",
		Brands: []string{"oppo"},
		Components: []Component{
			{"com.coloros.safecenter", "com.coloros.safecenter.permission.startup.StartupAppListActivity"},
			{"com.oppo.safe", "com.oppo.safe.permission.startup.StartupAppListActivity"},
			{"com.coloros.safecenter", "com.coloros.safecenter.startupapp.StartupAppListActivity"},
			{"com.coloros.oppoguardelf", "com.coloros.oppoguardelf.ui.startup.StartupAppListActivity"},
		},
		Fallback: Fallback{Kind: FallbackAppDetails},
	},
	{
		Name:   "Vivo",
		Brands: []string{"vivo"},
		Components: []Component{
			{"com.iqoo.secure", "com.iqoo.secure.ui.phoneoptimize.AddWhiteListActivity"},
			{"com.vivo.permissionmanager", "com.vivo.permissionmanager.activity.BgStartUpManagerActivity"},
			{"com.iqoo.secure", "com.iqoo.secure.ui.phoneoptimize.BgStartUpManager"},
			{"com.vivo.securedaemonservice", "com.vivo.securedaemonservice.activity.BgStartUpManagerActivity"},
		},
	},
	{
		Name:   "Nokia",
		Brands: []string{"nokia"},
		Components: []Component{
			{"com.evenwell.powersaving.g3", "com.evenwell.powersaving.g3.exception.PowerSaverExceptionActivity"},
			{"com.evenwell.powersaving.g2", "com.evenwell.powersaving.g2.exception.PowerSaverExceptionActivity"},
		},
	},
	{
		Name:   "OnePlus",
		Brands: []string{"oneplus"},
		Components: []Component{
			{"com.oneplus.security", "com.oneplus.security.chainlaunch.view.ChainLaunchAppListActivity"},
			{"com.oneplus.security", "com.oneplus.security.chainlaunch.view.AppAutoLaunchActivity"},
		},
		Fallback: Fallback{Kind: FallbackAction, Action: BackgroundOptimizeAction},
	},
	{
		Name:   "Realme",
		Brands: []string{"realme"},
		Components: []Component{
			{"com.coloros.safecenter", "com.coloros.safecenter.startupapp.StartupAppListActivity"},
			{"com.realme.securitycenter", "com.realme.securitycenter.startupapp.StartupAppListActivity"},
		},
		// Realme has no fallback screen of its own. It borrows Oppo's App info
		// fallback on the assumption that Realme UI, a ColorOS fork, behaves alike.
		Fallback: Fallback{Kind: FallbackAppDetails},
	},
	{
		Name:   "Meizu",
		Brands: []string{"meizu"},
		Components: []Component{
			{"com.meizu.safe", "com.meizu.safe.permission.SmartBGActivity"},
			{"com.meizu.safe", "com.meizu.safe.permission.PermissionMainActivity"},
		},
	},
	{
		Name:   "Lenovo",
		Brands: []string{"lenovo", "motorola"},
		Components: []Component{
			{"com.lenovo.security", "com.lenovo.security.powersetting.PowerAppsWhiteListActivity"},
			{"com.lenovo.safecenter", "com.lenovo.safecenter.autostart.AutoStartActivity"},
		},
	},
}
