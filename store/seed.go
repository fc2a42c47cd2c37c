// Package store holds storage-neutral catalog data shared by the store
// implementations.
package store

import (
	"github.com/shopspring/decimal"

	"github.com/reoring/catalogpatch/catalog"
)

// SeedProducts returns the demo catalog loaded by the seed command.
func SeedProducts() []catalog.Product {
	out := make([]catalog.Product, 0, len(seed))
	for _, s := range seed {
		desc := s.description
		out = append(out, catalog.Product{
			SKU:         s.sku,
			Name:        s.name,
			ImgURI:      s.imgURI,
			Price:       decimal.RequireFromString(s.price),
			Description: &desc,
		})
	}
	return out
}

var seed = []struct {
	sku, name, imgURI, price, description string
}{
	{"PC-MOUSE-001", "Wireless Mouse", "https://images.example.com/mouse.jpg", "29.99", "Ergonomic wireless mouse with USB receiver"},
	{"PC-MOUSE-002", "Gaming Mouse RGB", "https://images.example.com/gaming-mouse.jpg", "59.99", "High-precision gaming mouse with customizable RGB lighting"},
	{"PC-MOUSE-003", "Trackball Mouse", "https://images.example.com/trackball.jpg", "49.99", "Ergonomic trackball mouse for precision work"},
	{"PC-KB-001", "Mechanical Keyboard", "https://images.example.com/keyboard.jpg", "89.99", "RGB mechanical keyboard with Cherry MX switches"},
	{"PC-KB-002", "Wireless Keyboard", "https://images.example.com/wireless-kb.jpg", "45.99", "Compact wireless keyboard with long battery life"},
	{"PC-KB-003", "Ergonomic Keyboard", "https://images.example.com/ergo-kb.jpg", "79.99", "Split ergonomic keyboard for comfortable typing"},
	{"PC-CAM-001", "Webcam HD", "https://images.example.com/webcam.jpg", "79.99", "1080p HD webcam with built-in microphone"},
	{"PC-CAM-002", "Webcam 4K", "https://images.example.com/webcam-4k.jpg", "149.99", "4K Ultra HD webcam with autofocus"},
	{"PC-PAD-001", "Mouse Pad XL", "https://images.example.com/mousepad.jpg", "19.99", "Extra large gaming mouse pad"},
	{"PC-PAD-002", "RGB Mouse Pad", "https://images.example.com/rgb-pad.jpg", "34.99", "RGB illuminated gaming mouse pad with USB hub"},
	{"PC-TAB-001", "Graphics Tablet", "https://images.example.com/tablet.jpg", "149.99", "Digital drawing tablet with pressure sensitivity"},
	{"PC-TAB-002", "Graphics Tablet Pro", "https://images.example.com/tablet-pro.jpg", "399.99", "Professional graphics tablet with 8192 pressure levels"},
	{"AUD-HS-001", "Headset", "https://images.example.com/headset.jpg", "59.99", "Noise-cancelling wireless headset"},
	{"AUD-HS-002", "Gaming Headset", "https://images.example.com/gaming-headset.jpg", "89.99", "7.1 surround sound gaming headset with RGB"},
	{"AUD-HS-003", "Studio Headphones", "https://images.example.com/studio-hp.jpg", "199.99", "Professional studio monitoring headphones"},
	{"AUD-MIC-001", "Microphone", "https://images.example.com/mic.jpg", "119.99", "USB condenser microphone for streaming"},
	{"AUD-MIC-002", "Microphone XLR", "https://images.example.com/mic-xlr.jpg", "249.99", "Professional XLR condenser microphone"},
	{"AUD-SPK-001", "Bluetooth Speaker", "https://images.example.com/speaker.jpg", "69.99", "Portable Bluetooth speaker with 360° sound"},
	{"AUD-SPK-002", "Desktop Speakers", "https://images.example.com/desktop-spk.jpg", "129.99", "Premium 2.1 desktop speaker system"},
	{"AUD-INT-001", "Audio Interface", "https://images.example.com/interface.jpg", "179.99", "USB audio interface with 2 inputs"},
	{"DISP-MON-001", "Monitor 27\"", "https://images.example.com/monitor.jpg", "299.99", "27-inch 4K IPS monitor with USB-C"},
	{"DISP-MON-002", "Monitor 32\" Curved", "https://images.example.com/monitor-curved.jpg", "449.99", "32-inch curved gaming monitor 165Hz"},
	{"DISP-MON-003", "Monitor 24\" FHD", "https://images.example.com/monitor-24.jpg", "179.99", "24-inch Full HD monitor for productivity"},
	{"DISP-MON-004", "Portable Monitor", "https://images.example.com/portable-mon.jpg", "199.99", "15.6-inch portable USB-C monitor"},
	{"STOR-SSD-001", "External SSD 1TB", "https://images.example.com/ssd.jpg", "129.99", "Portable 1TB SSD with USB 3.2"},
	{"STOR-SSD-002", "External SSD 2TB", "https://images.example.com/ssd-2tb.jpg", "229.99", "Portable 2TB SSD with USB-C 3.2 Gen 2"},
	{"STOR-HDD-001", "External HDD 4TB", "https://images.example.com/hdd.jpg", "99.99", "4TB external hard drive for backup"},
	{"STOR-NVME-001", "NVMe SSD 500GB", "https://images.example.com/nvme.jpg", "79.99", "Internal NVMe M.2 SSD 500GB"},
	{"STOR-CASE-001", "HDD Enclosure", "https://images.example.com/enclosure.jpg", "24.99", "USB 3.0 external drive enclosure"},
	{"CBL-HDMI-001", "HDMI Cable 2m", "https://images.example.com/hdmi.jpg", "12.99", "High-speed HDMI 2.1 cable"},
	{"CBL-USBC-001", "USB-C Cable 3m", "https://images.example.com/usbc-cable.jpg", "15.99", "USB-C to USB-C cable 100W PD"},
	{"CBL-DP-001", "DisplayPort Cable", "https://images.example.com/dp-cable.jpg", "18.99", "DisplayPort 1.4 cable 8K support"},
	{"CBL-ETH-001", "Ethernet Cable 5m", "https://images.example.com/ethernet.jpg", "9.99", "Cat 6 Ethernet cable"},
	{"ACC-HUB-001", "USB-C Hub", "https://images.example.com/hub.jpg", "49.99", "Multi-port USB-C hub with HDMI and SD card reader"},
	{"ACC-HUB-002", "USB Hub 7-Port", "https://images.example.com/usb-hub.jpg", "29.99", "7-port USB 3.0 hub with power adapter"},
	{"ACC-STAND-001", "Laptop Stand", "https://images.example.com/stand.jpg", "39.99", "Aluminum laptop stand with adjustable height"},
	{"ACC-STAND-002", "Monitor Arm", "https://images.example.com/monitor-arm.jpg", "89.99", "Adjustable monitor arm for ergonomic positioning"},
	{"ACC-LAMP-001", "Desk Lamp", "https://images.example.com/lamp.jpg", "34.99", "LED desk lamp with touch control and wireless charging"},
	{"ACC-ORG-001", "Cable Organizer", "https://images.example.com/organizer.jpg", "14.99", "Cable management box for desk organization"},
	{"ACC-HOLD-001", "Phone Holder", "https://images.example.com/holder.jpg", "16.99", "Adjustable phone holder for desk"},
	{"ACC-CLN-001", "Screen Cleaner Kit", "https://images.example.com/cleaner.jpg", "9.99", "Screen cleaning solution with microfiber cloth"},
	{"ACC-CUSH-001", "Ergonomic Chair Cushion", "https://images.example.com/cushion.jpg", "34.99", "Memory foam seat cushion for office chairs"},
	{"ACC-REST-001", "Wrist Rest", "https://images.example.com/wrist-rest.jpg", "19.99", "Ergonomic keyboard wrist rest with memory foam"},
	{"ACC-DESK-001", "Desk Mat", "https://images.example.com/desk-mat.jpg", "29.99", "Large leather desk mat protector"},
	{"ACC-FAN-001", "Laptop Cooling Pad", "https://images.example.com/cooling-pad.jpg", "39.99", "Laptop cooling pad with adjustable fans"},
	{"CHG-WLESS-001", "Wireless Charger", "https://images.example.com/charger.jpg", "24.99", "Fast wireless charging pad"},
	{"CHG-PWR-001", "Power Bank 20000mAh", "https://images.example.com/powerbank.jpg", "44.99", "High-capacity power bank with fast charging"},
	{"CHG-PWR-002", "Power Bank 30000mAh", "https://images.example.com/powerbank-30k.jpg", "69.99", "Ultra-high capacity power bank with laptop charging"},
	{"CHG-MULT-001", "Multi-Device Charger", "https://images.example.com/multi-charger.jpg", "54.99", "6-port USB charging station"},
	{"CHG-GAN-001", "GaN Charger 65W", "https://images.example.com/gan-charger.jpg", "49.99", "Compact GaN USB-C charger 65W"},
}
